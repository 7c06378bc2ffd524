package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is the claim set carried by every issued JWT.
//
// Besides the registered claims it embeds the user's email, roles and
// permission claims so that authorization decisions never hit the database.
type TokenClaims struct {
	jwt.RegisteredClaims

	// Email is the login of the token owner.
	Email string `json:"email"`

	// Roles are the role names of the owner.
	Roles []string `json:"role,omitempty"`

	// Permissions holds every non-role claim of the owner.
	Permissions []Claim `json:"claims,omitempty"`
}

// Token wraps a JWT token with convenience accessors for authentication flows.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// Claims is the decoded claim set.
	Claims TokenClaims `json:"-"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// UserID returns the owner identifier stored in the "sub" claim.
func (t *Token) UserID() string {
	return t.Claims.Subject
}

// HasClaim reports whether the token carries a claim of the given type.
func (t *Token) HasClaim(claimType string) bool {
	for _, c := range t.Claims.Permissions {
		if c.Type == claimType {
			return true
		}
	}
	return false
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
