package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/MKhiriev/fornecedor-api/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		h.withTraceID,
		h.withLogging,
		h.withMetrics,
		h.withSecureHeaders,
		middleware.Recoverer,
		middleware.Compress(5, "application/json"),
	)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	// identity routes, rate limited per client IP
	router.Group(func(r chi.Router) {
		// a negative limit disables throttling
		if h.cfg.RateLimit > 0 {
			r.Use(httprate.Limit(h.cfg.RateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)))
		}
		r.Post("/registro", h.traced("Registro", h.register))
		r.Post("/login", h.traced("Login", h.login))
	})

	// routes without authorization
	router.Get("/fornecedor", h.traced("ListarFornecedores", h.listSuppliers))
	router.Get("/version", h.getServerVersion)
	router.Get("/healthz", h.healthz)
	router.Handle("/metrics", h.metrics.handler())

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/fornecedor/{id}", h.traced("ObterFornecedor", h.getSupplier))
		r.Post("/fornecedor", h.traced("CriarFornecedor", h.createSupplier))
		r.Put("/fornecedor/{id}", h.traced("AtualizarFornecedor", h.updateSupplier))
		r.With(requireClaim(models.ClaimDeleteSupplier)).
			Delete("/fornecedor/{id}", h.traced("ExcluirFornecedor", h.deleteSupplier))
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
