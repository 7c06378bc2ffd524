package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/fornecedor-api/internal/logger"
	"github.com/MKhiriev/fornecedor-api/internal/service"
	"github.com/MKhiriev/fornecedor-api/internal/store"
	"github.com/MKhiriev/fornecedor-api/internal/utils"
	"github.com/MKhiriev/fornecedor-api/internal/validators"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidCredentials:      http.StatusBadRequest,
	service.ErrUserLockedOut:           http.StatusBadRequest,
	service.ErrSupplierNotSaved:        http.StatusBadRequest,
	service.ErrSupplierNotRemoved:      http.StatusBadRequest,
	service.ErrSupplierNotFound:        http.StatusNotFound,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrTokenCreationFailed:     http.StatusInternalServerError,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
	store.ErrLockoutStorage:       http.StatusInternalServerError,

	context.DeadlineExceeded: http.StatusGatewayTimeout,
}

// errorResponse returns the status code and the client-facing message for
// err. Client errors carry the sentinel's own text; server errors only the
// status text.
func errorResponse(err error) (int, string) {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			if status >= http.StatusInternalServerError {
				return status, http.StatusText(status)
			}
			return status, target.Error()
		}
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// writeError maps a service error to the response. Validation failures are
// written as a field to messages JSON object and identity failures as a JSON
// array of messages; everything else goes through [errorResponse].
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var validationErrors validators.ValidationErrors
	if errors.As(err, &validationErrors) {
		log.Debug().Err(err).Msg("request failed validation")
		utils.WriteJSON(w, validationErrors, http.StatusBadRequest)
		return
	}

	var identityErrors service.IdentityErrors
	if errors.As(err, &identityErrors) {
		log.Debug().Err(err).Msg("identity provider rejected request")
		utils.WriteJSON(w, identityErrors, http.StatusBadRequest)
		return
	}

	status, message := errorResponse(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	http.Error(w, message, status)
}
