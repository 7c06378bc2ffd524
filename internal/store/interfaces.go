package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/fornecedor-api/models"
)

// UserRepository persists user accounts together with their claims and roles.
type UserRepository interface {
	// CreateUser inserts the user, its claims and roles in one transaction.
	// Returns ErrEmailAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindUserByEmail looks the user up case-insensitively.
	// Returns ErrUserNotFound when there is no such account.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// SupplierRepository is the persistence context for suppliers.
// Every write reports its commit count (rows affected).
type SupplierRepository interface {
	GetAll(ctx context.Context) ([]models.Supplier, error)
	// GetByID returns ErrSupplierNotFound when the row does not exist.
	GetByID(ctx context.Context, id string) (models.Supplier, error)
	Create(ctx context.Context, supplier models.Supplier) (int64, error)
	Update(ctx context.Context, supplier models.Supplier) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// LockoutStorage keeps failed login counters and lockout deadlines.
type LockoutStorage interface {
	// RecordFailure increments the failure counter and returns its new value.
	RecordFailure(ctx context.Context, userID string) (int, error)
	// Lock locks the account until the given moment and clears the counter.
	Lock(ctx context.Context, userID string, until time.Time) error
	// LockedUntil returns the lockout deadline, if any.
	LockedUntil(ctx context.Context, userID string) (time.Time, bool, error)
	// Reset clears both the counter and the deadline.
	Reset(ctx context.Context, userID string) error
}

// HealthChecker reports whether the storage backends are reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// ErrorClassificator interprets driver errors.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}
