package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/MKhiriev/fornecedor-api/internal/tracing"
	"github.com/MKhiriev/fornecedor-api/models"
)

// SupplierTracingService opens a child span around every call to the
// wrapped SupplierService.
type SupplierTracingService struct {
	inner  SupplierService
	tracer trace.Tracer
}

func NewSupplierTracingService(tracer trace.Tracer) SupplierServiceWrapper {
	return &SupplierTracingService{tracer: tracer}
}

func (s *SupplierTracingService) List(ctx context.Context) ([]models.Supplier, error) {
	ctx, span := s.tracer.Start(ctx, "SupplierService.List")
	defer span.End()

	suppliers, err := s.inner.List(ctx)
	span.SetAttributes(attribute.Int("supplier.count", len(suppliers)))
	tracing.RecordError(span, err)

	return suppliers, err
}

func (s *SupplierTracingService) Get(ctx context.Context, id string) (models.Supplier, error) {
	ctx, span := s.tracer.Start(ctx, "SupplierService.Get", trace.WithAttributes(attribute.String("supplier.id", id)))
	defer span.End()

	supplier, err := s.inner.Get(ctx, id)
	tracing.RecordError(span, err)

	return supplier, err
}

func (s *SupplierTracingService) Create(ctx context.Context, supplier models.Supplier) (models.Supplier, error) {
	ctx, span := s.tracer.Start(ctx, "SupplierService.Create")
	defer span.End()

	created, err := s.inner.Create(ctx, supplier)
	if err == nil {
		span.SetAttributes(attribute.String("supplier.id", created.ID))
	}
	tracing.RecordError(span, err)

	return created, err
}

func (s *SupplierTracingService) Update(ctx context.Context, supplier models.Supplier) error {
	ctx, span := s.tracer.Start(ctx, "SupplierService.Update", trace.WithAttributes(attribute.String("supplier.id", supplier.ID)))
	defer span.End()

	err := s.inner.Update(ctx, supplier)
	tracing.RecordError(span, err)

	return err
}

func (s *SupplierTracingService) Delete(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "SupplierService.Delete", trace.WithAttributes(attribute.String("supplier.id", id)))
	defer span.End()

	err := s.inner.Delete(ctx, id)
	tracing.RecordError(span, err)

	return err
}

func (s *SupplierTracingService) Wrap(wrapped SupplierService) SupplierService {
	s.inner = wrapped
	return s
}
