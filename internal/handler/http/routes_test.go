package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/fornecedor-api/internal/config"
	"github.com/MKhiriev/fornecedor-api/internal/logger"
	"github.com/MKhiriev/fornecedor-api/internal/service"
	"github.com/MKhiriev/fornecedor-api/models"
)

func TestNewHandler(t *testing.T) {
	services := &service.Services{}
	cfg := config.Server{RateLimit: 10}
	h := NewHandler(services, cfg, nil, logger.Nop())

	require.NotNil(t, h)
	assert.Same(t, services, h.services)
	assert.Equal(t, cfg, h.cfg)
	assert.NotNil(t, h.metrics)
	assert.NotNil(t, h.secure)
}

func TestInit_ProtectedRoutesRequireToken(t *testing.T) {
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/fornecedor/" + supplierID},
		{http.MethodPost, "/fornecedor"},
		{http.MethodPut, "/fornecedor/" + supplierID},
		{http.MethodDelete, "/fornecedor/" + supplierID},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			// no service expectations: any call fails the test
			env := newTestEnv(t)

			rec := env.serve(httptest.NewRequest(route.method, route.path, jsonBody(t, acme)))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestInit_ListIsPublic(t *testing.T) {
	env := newTestEnv(t)
	env.suppliers.EXPECT().List(gomock.Any()).Return([]models.Supplier{acme}, nil)

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/fornecedor", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
}

func TestInit_DeleteRequiresClaim(t *testing.T) {
	t.Run("forbidden without claim", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.EXPECT().ParseToken(gomock.Any(), "plain").Return(tokenWithClaims("user-1"), nil)

		req := httptest.NewRequest(http.MethodDelete, "/fornecedor/"+supplierID, nil)
		req.Header.Set("Authorization", "Bearer plain")
		rec := env.serve(req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("deleted with claim", func(t *testing.T) {
		env := newTestEnv(t)
		env.auth.EXPECT().ParseToken(gomock.Any(), "admin").Return(tokenWithClaims("user-1", deleteClaim), nil)
		env.suppliers.EXPECT().Delete(gomock.Any(), supplierID).Return(nil)

		req := httptest.NewRequest(http.MethodDelete, "/fornecedor/"+supplierID, nil)
		req.Header.Set("Authorization", "Bearer admin")
		rec := env.serve(req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestInit_AuthenticatedCrud(t *testing.T) {
	env := newTestEnv(t)
	env.auth.EXPECT().ParseToken(gomock.Any(), "good").Return(tokenWithClaims("user-1"), nil).AnyTimes()
	env.suppliers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(acme, nil)
	env.suppliers.EXPECT().Get(gomock.Any(), supplierID).Return(acme, nil)
	env.suppliers.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	authorized := func(r *http.Request) *http.Request {
		r.Header.Set("Authorization", "Bearer good")
		return r
	}

	rec := env.serve(authorized(httptest.NewRequest(http.MethodPost, "/fornecedor", jsonBody(t, acme))))
	require.Equal(t, http.StatusCreated, rec.Code)
	location := rec.Header().Get("Location")
	assert.Equal(t, "/fornecedor/"+supplierID, location)

	rec = env.serve(authorized(httptest.NewRequest(http.MethodGet, location, nil)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.serve(authorized(httptest.NewRequest(http.MethodPut, location, jsonBody(t, acme))))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestInit_UnregisteredMethodIsNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.serve(httptest.NewRequest(http.MethodDelete, "/fornecedor", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_IdentityRoutesAreRateLimited(t *testing.T) {
	env := newTestEnvWithConfig(t, config.Server{RateLimit: 1})
	env.auth.EXPECT().Login(gomock.Any(), loginRequest).Return(models.User{}, service.ErrInvalidCredentials)

	router := env.handler.Init()
	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/login", jsonBody(t, loginRequest))
		req.RemoteAddr = "10.0.0.1:4000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusBadRequest, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestInit_NegativeRateLimitDisablesThrottling(t *testing.T) {
	env := newTestEnvWithConfig(t, config.Server{RateLimit: -1})
	env.auth.EXPECT().Login(gomock.Any(), loginRequest).Return(models.User{}, service.ErrInvalidCredentials).Times(3)

	router := env.handler.Init()
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/login", jsonBody(t, loginRequest))
		req.RemoteAddr = "10.0.0.1:4000"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

func TestInit_RecoversFromPanics(t *testing.T) {
	env := newTestEnv(t)
	env.suppliers.EXPECT().List(gomock.Any()).DoAndReturn(func(any) ([]models.Supplier, error) {
		panic("boom")
	})

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/fornecedor", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
