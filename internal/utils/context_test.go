// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/fornecedor-api/models"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "testKey", contextKey("testKey").String())
	assert.Equal(t, "userID", UserIDCtxKey.String())
	assert.Equal(t, "token", TokenCtxKey.String())
}

func TestGetUserIDFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		wantID string
		wantOK bool
	}{
		{
			name:   "present",
			ctx:    context.WithValue(context.Background(), UserIDCtxKey, "user-1"),
			wantID: "user-1",
			wantOK: true,
		},
		{
			name: "missing",
			ctx:  context.Background(),
		},
		{
			name: "empty string",
			ctx:  context.WithValue(context.Background(), UserIDCtxKey, ""),
		},
		{
			name: "wrong type",
			ctx:  context.WithValue(context.Background(), UserIDCtxKey, int64(42)),
		},
		{
			name: "different key",
			ctx:  context.WithValue(context.Background(), contextKey("otherKey"), "user-1"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := GetUserIDFromContext(tt.ctx)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantID, id)
			}
		})
	}
}

func TestWithToken(t *testing.T) {
	token := &models.Token{
		Claims: models.TokenClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-7"}},
	}

	ctx := WithToken(context.Background(), token)

	got, ok := GetTokenFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, token, got)

	id, ok := GetUserIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "user-7", id)
}

func TestGetTokenFromContext_Missing(t *testing.T) {
	token, ok := GetTokenFromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, token)

	var nilToken *models.Token
	token, ok = GetTokenFromContext(context.WithValue(context.Background(), TokenCtxKey, nilToken))
	assert.False(t, ok)
	assert.Nil(t, token)
}
