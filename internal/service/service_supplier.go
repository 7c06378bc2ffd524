package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/fornecedor-api/internal/logger"
	"github.com/MKhiriev/fornecedor-api/internal/store"
	"github.com/MKhiriev/fornecedor-api/internal/utils"
	"github.com/MKhiriev/fornecedor-api/internal/validators"
	"github.com/MKhiriev/fornecedor-api/models"
)

type supplierService struct {
	supplierRepository store.SupplierRepository

	validator     validators.Validator
	uuidGenerator *utils.UUIDGenerator

	logger *logger.Logger
}

func NewSupplierService(supplierRepository store.SupplierRepository, logger *logger.Logger) SupplierService {
	return &supplierService{
		supplierRepository: supplierRepository,
		validator:          validators.NewRequestValidator(),
		uuidGenerator:      utils.NewUUIDGenerator(),
		logger:             logger,
	}
}

func (s *supplierService) List(ctx context.Context) ([]models.Supplier, error) {
	return s.supplierRepository.GetAll(ctx)
}

func (s *supplierService) Get(ctx context.Context, id string) (models.Supplier, error) {
	supplier, err := s.supplierRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrSupplierNotFound) {
			return models.Supplier{}, fmt.Errorf("%w: %s", ErrSupplierNotFound, id)
		}
		return models.Supplier{}, err
	}

	return supplier, nil
}

// Create validates supplier, assigns it a fresh id and inserts it.
// A zero commit count is reported as [ErrSupplierNotSaved].
func (s *supplierService) Create(ctx context.Context, supplier models.Supplier) (models.Supplier, error) {
	if err := s.validator.Validate(ctx, supplier); err != nil {
		return models.Supplier{}, fmt.Errorf("supplier validation failed: %w", err)
	}

	supplier.ID = s.uuidGenerator.Generate()

	affected, err := s.supplierRepository.Create(ctx, supplier)
	if err != nil {
		return models.Supplier{}, err
	}
	if affected <= 0 {
		logger.FromContext(ctx).Warn().Str("id", supplier.ID).Msg("supplier insert affected no rows")
		return models.Supplier{}, ErrSupplierNotSaved
	}

	return supplier, nil
}

// Update requires an existing row: the lookup runs before validation, so a
// missing supplier is reported as not found even when the payload is invalid.
func (s *supplierService) Update(ctx context.Context, supplier models.Supplier) error {
	if _, err := s.Get(ctx, supplier.ID); err != nil {
		return err
	}

	if err := s.validator.Validate(ctx, supplier); err != nil {
		return fmt.Errorf("supplier validation failed: %w", err)
	}

	affected, err := s.supplierRepository.Update(ctx, supplier)
	if err != nil {
		return err
	}
	if affected <= 0 {
		logger.FromContext(ctx).Warn().Str("id", supplier.ID).Msg("supplier update affected no rows")
		return ErrSupplierNotSaved
	}

	return nil
}

// Delete removes an existing supplier. A zero commit count still counts as
// success; only a negative one is reported as [ErrSupplierNotRemoved].
func (s *supplierService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	affected, err := s.supplierRepository.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected < 0 {
		return ErrSupplierNotRemoved
	}

	return nil
}
