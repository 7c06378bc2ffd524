package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/fornecedor-api/internal/service"
	"github.com/MKhiriev/fornecedor-api/internal/store"
)

func TestErrorResponse(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusBadRequest, "Usuário ou senha inválidos"},
		{"locked out", service.ErrUserLockedOut, http.StatusBadRequest, "Usuário bloqueado"},
		{"wrapped not found", fmt.Errorf("%w: 42", service.ErrSupplierNotFound), http.StatusNotFound, "Fornecedor não encontrado"},
		{"invalid token", service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, "token is expired or invalid"},
		{"token creation hides details", service.ErrTokenCreationFailed, http.StatusInternalServerError, "Internal Server Error"},
		{"storage error", fmt.Errorf("get all: %w", store.ErrScanningRows), http.StatusInternalServerError, "Internal Server Error"},
		{"lockout storage", store.ErrLockoutStorage, http.StatusInternalServerError, "Internal Server Error"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "Gateway Timeout"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := errorResponse(tt.err)

			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}
