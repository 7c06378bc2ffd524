package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/fornecedor-api/internal/config"
	"github.com/MKhiriev/fornecedor-api/internal/logger"
	"github.com/MKhiriev/fornecedor-api/internal/mock"
	"github.com/MKhiriev/fornecedor-api/internal/service"
	"github.com/MKhiriev/fornecedor-api/internal/utils"
	"github.com/MKhiriev/fornecedor-api/models"
)

// testEnv bundles a Handler with the mocks behind it.
type testEnv struct {
	handler   *Handler
	auth      *mock.MockAuthService
	suppliers *mock.MockSupplierService
	appInfo   *mock.MockAppInfoService
	health    *mock.MockHealthChecker
	spans     *tracetest.SpanRecorder
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithConfig(t, config.Server{})
}

func newTestEnvWithConfig(t *testing.T, cfg config.Server) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)

	env := &testEnv{
		auth:      mock.NewMockAuthService(ctrl),
		suppliers: mock.NewMockSupplierService(ctrl),
		appInfo:   mock.NewMockAppInfoService(ctrl),
		health:    mock.NewMockHealthChecker(ctrl),
		spans:     tracetest.NewSpanRecorder(),
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(env.spans))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	services := &service.Services{
		AuthService:     env.auth,
		SupplierService: env.suppliers,
		AppInfoService:  env.appInfo,
		HealthChecker:   env.health,
	}
	env.handler = NewHandler(services, cfg, tp.Tracer("test"), logger.Nop())

	return env
}

// serve sends the request through the full router.
func (e *testEnv) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.handler.Init().ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// withToken returns r carrying an authenticated token with the given claims,
// as the auth middleware would leave it.
func withToken(r *http.Request, userID string, claims ...models.Claim) *http.Request {
	token := &models.Token{Claims: models.TokenClaims{Permissions: claims}}
	token.Claims.Subject = userID
	return r.WithContext(utils.WithToken(r.Context(), token))
}

func tokenWithClaims(userID string, claims ...models.Claim) models.Token {
	token := models.Token{Claims: models.TokenClaims{Permissions: claims}}
	token.Claims.Subject = userID
	return token
}

var deleteClaim = models.Claim{Type: models.ClaimDeleteSupplier, Value: "true"}
