package handler

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/MKhiriev/fornecedor-api/internal/config"
	"github.com/MKhiriev/fornecedor-api/internal/handler/http"
	"github.com/MKhiriev/fornecedor-api/internal/logger"
	"github.com/MKhiriev/fornecedor-api/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.Server, tracer trace.Tracer, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(services, cfg, tracer, logger),
	}, nil
}
