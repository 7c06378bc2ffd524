package service

import (
	"fmt"

	"go.opentelemetry.io/otel/trace"

	"github.com/MKhiriev/fornecedor-api/internal/config"
	"github.com/MKhiriev/fornecedor-api/internal/logger"
	"github.com/MKhiriev/fornecedor-api/internal/store"
)

type Services struct {
	AuthService     AuthService
	SupplierService SupplierService
	AppInfoService  AppInfoService
	HealthChecker   store.HealthChecker
}

// NewServices wires every service to its storage. Supplier calls are
// wrapped in child spans of tracer.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, tracer trace.Tracer, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	supplierService := NewSupplierTracingService(tracer).
		Wrap(NewSupplierService(storages.SupplierRepository, logger))

	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, storages.LockoutStorage, cfg, logger),
		SupplierService: supplierService,
		AppInfoService:  appInfoService,
		HealthChecker:   storages.HealthChecker,
	}, nil
}
