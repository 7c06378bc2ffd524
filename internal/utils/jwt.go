package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/fornecedor-api/models"
)

// TokenParams groups the settings shared by token issuance and validation.
type TokenParams struct {
	// Issuer is written to and checked against the "iss" claim.
	Issuer string
	// Audience is written to and checked against the "aud" claim.
	Audience string
	// SignKey is the HMAC-SHA256 secret.
	SignKey string
	// Duration is the token lifetime.
	Duration time.Duration
}

// ErrInvalidTokenParams is returned when token parameters are incomplete.
var ErrInvalidTokenParams = errors.New("invalid params for generating JWT Token")

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token for user.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Audience  (aud): the intended consumer of the token
//   - Subject   (sub): the user ID
//   - IssuedAt  (iat) and NotBefore (nbf): the current time
//   - ExpiresAt (exp): the current time plus Duration
//   - ID        (jti): a fresh UUID
//   - email, role and claims: the user's email, roles and permission claims
//
// Issuer, SignKey and a non-zero Duration are required.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken(params, user)
func GenerateJWTToken(params TokenParams, user models.User) (models.Token, error) {
	if params.Issuer == "" || params.Duration == 0 || params.SignKey == "" {
		return models.Token{}, ErrInvalidTokenParams
	}

	now := time.Now()
	claims := models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    params.Issuer,
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(params.Duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        NewUUIDGenerator().Generate(),
		},
		Email:       user.Email,
		Roles:       user.Roles,
		Permissions: user.Claims,
	}
	if params.Audience != "" {
		claims.Audience = jwt.ClaimStrings{params.Audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(params.SignKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{Token: token, Claims: claims, SignedString: tokenString}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Signature verification with HS256 only
//   - Issuer (iss) and, when configured, audience (aud) checks
//   - Expiration (exp) and not-before (nbf) checks
//   - Subject (sub) claim presence
//
// Example usage:
//
//	token, err := utils.ValidateAndParseJWTToken(rawToken, params)
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString string, params TokenParams) (models.Token, error) {
	opts := []jwt.ParserOption{
		jwt.WithIssuer(params.Issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if params.Audience != "" {
		opts = append(opts, jwt.WithAudience(params.Audience))
	}

	var claims models.TokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(params.SignKey), nil
	}, opts...)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	return models.Token{Token: token, Claims: claims, SignedString: tokenString}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
