package http

import (
	"github.com/unrolled/secure"
	"go.opentelemetry.io/otel/trace"

	"github.com/MKhiriev/fornecedor-api/internal/config"
	"github.com/MKhiriev/fornecedor-api/internal/logger"
	"github.com/MKhiriev/fornecedor-api/internal/service"
)

type Handler struct {
	services *service.Services
	cfg      config.Server

	tracer  trace.Tracer
	metrics *metrics
	secure  *secure.Secure

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, tracer trace.Tracer, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		cfg:      cfg,
		tracer:   tracer,
		metrics:  newMetrics(),
		secure:   newSecure(),
		logger:   logger,
	}
}
