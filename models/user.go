package models

import "time"

// User represents an account managed by the identity layer.
// Email doubles as the login name.
type User struct {
	// ID is the server-generated identifier (UUID v7 string).
	ID string `json:"id"`

	// Email is the unique login of the account.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the account password.
	// It never leaves the server.
	PasswordHash string `json:"-"`

	// EmailConfirmed reports whether the email was confirmed.
	// Accounts created through registration are confirmed immediately.
	EmailConfirmed bool `json:"-"`

	// LockoutEnabled reports whether failed logins count towards lockout.
	LockoutEnabled bool `json:"-"`

	// AccessFailedCount is the number of consecutive failed logins.
	AccessFailedCount int `json:"-"`

	// LockoutEnd is the moment the current lockout expires.
	// Nil when the account is not locked.
	LockoutEnd *time.Time `json:"-"`

	// Claims are the permission claims granted to the user.
	Claims []Claim `json:"-"`

	// Roles are the role names the user belongs to.
	Roles []string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"-"`
}

// IsLockedOut reports whether the account is locked at the given moment.
func (u User) IsLockedOut(now time.Time) bool {
	return u.LockoutEnabled && u.LockoutEnd != nil && u.LockoutEnd.After(now)
}

// HasClaim reports whether the user holds a claim of the given type.
func (u User) HasClaim(claimType string) bool {
	for _, c := range u.Claims {
		if c.Type == claimType {
			return true
		}
	}
	return false
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
