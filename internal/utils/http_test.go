package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		data     any
		status   int
		wantBody string
	}{
		{name: "map", data: map[string]string{"nome": "Acme"}, status: http.StatusOK, wantBody: `{"nome":"Acme"}`},
		{name: "created", data: struct {
			ID string `json:"id"`
		}{ID: "1"}, status: http.StatusCreated, wantBody: `{"id":"1"}`},
		{name: "messages", data: []string{"Usuário bloqueado"}, status: http.StatusBadRequest, wantBody: `["Usuário bloqueado"]`},
		{name: "empty slice", data: []int{}, status: http.StatusOK, wantBody: `[]`},
		{name: "nil", data: nil, status: http.StatusOK, wantBody: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			n, err := WriteJSON(w, tt.data, tt.status)

			require.NoError(t, err)
			assert.Equal(t, len(tt.wantBody), n)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestWriteJSON_InvalidData(t *testing.T) {
	w := httptest.NewRecorder()

	// channels cannot be marshaled to JSON
	_, err := WriteJSON(w, make(chan int), http.StatusOK)

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Nome string `json:"nome"`
	}

	tests := []struct {
		name      string
		body      string
		want      string
		wantErr   bool
		wantEmpty bool
	}{
		{name: "valid", body: `{"nome":"Acme"}`, want: "Acme"},
		{name: "empty", body: "", wantErr: true, wantEmpty: true},
		{name: "malformed", body: `{"nome":`, wantErr: true},
		{name: "wrong type", body: `{"nome":1}`, wantErr: true},
		{name: "trailing data", body: `{"nome":"a"}{"nome":"b"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var p payload
			err := DecodeJSON(r, &p)

			if tt.wantErr {
				require.Error(t, err)
				if tt.wantEmpty {
					assert.ErrorIs(t, err, ErrEmptyBody)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Nome)
		})
	}
}

func TestDecodeJSON_NoBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)

	assert.ErrorIs(t, DecodeJSON(r, &struct{}{}), ErrEmptyBody)
}
