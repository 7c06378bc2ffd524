package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock -exclude_interfaces=SupplierServiceWrapper

import (
	"context"

	"github.com/MKhiriev/fornecedor-api/models"
)

type AuthService interface {
	// RegisterUser validates the request and creates a confirmed account
	// with lockout enabled.
	RegisterUser(ctx context.Context, request models.RegisterUser) (models.User, error)
	// Login checks the credentials and applies the lockout policy.
	Login(ctx context.Context, request models.LoginUser) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.LoginResponse, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type SupplierService interface {
	List(ctx context.Context) ([]models.Supplier, error)
	Get(ctx context.Context, id string) (models.Supplier, error)
	// Create assigns a new id to supplier and stores it.
	Create(ctx context.Context, supplier models.Supplier) (models.Supplier, error)
	// Update fully replaces the supplier identified by supplier.ID.
	Update(ctx context.Context, supplier models.Supplier) error
	Delete(ctx context.Context, id string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// SupplierServiceWrapper defines middleware composition for SupplierService.
// Implementations wrap an existing SupplierService to add behavior such as
// tracing.
type SupplierServiceWrapper interface {
	Wrap(SupplierService) SupplierService // returns a decorated SupplierService applying additional behavior
}
