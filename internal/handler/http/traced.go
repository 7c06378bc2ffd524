package http

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/MKhiriev/fornecedor-api/internal/utils"
)

// traced runs next inside a server span called name. The span continues an
// incoming W3C trace context and is tagged with the request method and path,
// the X-Trace-ID of the request, the authenticated user and the response
// status. Responses of 500 and above mark the span as failed.
func (h *Handler) traced(name string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		ctx, span := h.tracer.Start(ctx, name,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("url.path", r.URL.Path),
				attribute.String("request.trace_id", w.Header().Get(traceIDHeader)),
			),
		)
		defer span.End()

		if userID, ok := utils.GetUserIDFromContext(ctx); ok {
			span.SetAttributes(attribute.String("enduser.id", userID))
		}

		tw := &responseWriter{ResponseWriter: w}
		next(tw, r.WithContext(ctx))

		status := tw.Status()
		span.SetAttributes(attribute.Int("http.response.status_code", status))
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	}
}
