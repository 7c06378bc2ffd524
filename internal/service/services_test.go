package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/MKhiriev/fornecedor-api/internal/config"
	"github.com/MKhiriev/fornecedor-api/internal/logger"
	"github.com/MKhiriev/fornecedor-api/internal/store"
	"github.com/MKhiriev/fornecedor-api/models"
)

func newSQLiteStorages(t *testing.T) *store.Storages {
	t.Helper()

	storages, err := store.NewStorages(context.Background(), config.Storage{
		DB: config.DB{
			Driver: config.DriverSQLite,
			DSN:    "file:" + t.Name() + "?mode=memory&cache=shared",
		},
	}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { storages.Close() })

	return storages
}

func TestNewServices(t *testing.T) {
	cfg := testConfig()
	cfg.App.Version = "1.2.3"

	services, err := NewServices(newSQLiteStorages(t), cfg, noop.NewTracerProvider().Tracer("test"), logger.Nop())

	require.NoError(t, err)
	assert.NotNil(t, services.AuthService)
	assert.IsType(t, &SupplierTracingService{}, services.SupplierService)
	assert.Equal(t, "1.2.3", services.AppInfoService.GetAppVersion(context.Background()))
	assert.NoError(t, services.HealthChecker.Ping(context.Background()))
}

func TestNewServices_NoVersion(t *testing.T) {
	_, err := NewServices(newSQLiteStorages(t), testConfig(), noop.NewTracerProvider().Tracer("test"), logger.Nop())

	assert.ErrorIs(t, err, ErrVersionIsNotSpecified)
}

// TestServices_LockoutFlow drives the real repositories through a full
// register / fail / lock / reject cycle.
func TestServices_LockoutFlow(t *testing.T) {
	cfg := testConfig()
	cfg.App.Version = "1.2.3"
	services, err := NewServices(newSQLiteStorages(t), cfg, noop.NewTracerProvider().Tracer("test"), logger.Nop())
	require.NoError(t, err)

	ctx := context.Background()
	auth := services.AuthService

	_, err = auth.RegisterUser(ctx, models.RegisterUser{Email: "ana@example.com", Password: "s3cret!", ConfirmPassword: "s3cret!"})
	require.NoError(t, err)

	_, err = auth.RegisterUser(ctx, models.RegisterUser{Email: "ANA@example.com", Password: "s3cret!", ConfirmPassword: "s3cret!"})
	var identityErrors IdentityErrors
	require.ErrorAs(t, err, &identityErrors)

	user, err := auth.Login(ctx, models.LoginUser{Email: "ana@example.com", Password: "s3cret!"})
	require.NoError(t, err)
	assert.True(t, user.EmailConfirmed)

	for i := 1; i < cfg.Identity.MaxFailedAccessAttempts; i++ {
		_, err = auth.Login(ctx, models.LoginUser{Email: "ana@example.com", Password: "wrong!"})
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err = auth.Login(ctx, models.LoginUser{Email: "ana@example.com", Password: "wrong!"})
	require.ErrorIs(t, err, ErrUserLockedOut)

	_, err = auth.Login(ctx, models.LoginUser{Email: "ana@example.com", Password: "s3cret!"})
	assert.ErrorIs(t, err, ErrUserLockedOut)
}
