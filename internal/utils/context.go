// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, password hashing,
// HTTP response writing, HTTP client initialization, JWT token generation
// and validation, and identifier generation.
package utils

import (
	"context"

	"github.com/MKhiriev/fornecedor-api/models"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// UserIDCtxKey is the key used to store the authenticated user identifier
// in the context.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.UserIDCtxKey, "0190f5c2-...")
var UserIDCtxKey = contextKey("userID")

// TokenCtxKey is the key used to store the validated *models.Token in the
// context. Claim checks read the token from here.
var TokenCtxKey = contextKey("token")

// GetUserIDFromContext retrieves the user identifier from the context.
//
// Returns the user ID and an ok flag:
//   - ok == true : value is found, is a string and is not empty
//   - ok == false: value is missing, empty or has an unexpected type
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok && userID != ""
}

// WithToken returns a copy of ctx carrying the validated token and its
// owner identifier.
func WithToken(ctx context.Context, token *models.Token) context.Context {
	ctx = context.WithValue(ctx, TokenCtxKey, token)
	return context.WithValue(ctx, UserIDCtxKey, token.UserID())
}

// GetTokenFromContext retrieves the validated token stored by [WithToken].
func GetTokenFromContext(ctx context.Context) (*models.Token, bool) {
	token, ok := ctx.Value(TokenCtxKey).(*models.Token)
	return token, ok && token != nil
}
