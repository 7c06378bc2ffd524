package models

// LoginResponse is returned by successful registration and login.
type LoginResponse struct {
	// AccessToken is the signed JWT to be sent as a bearer token.
	AccessToken string `json:"accessToken"`

	// ExpiresIn is the token lifetime in seconds.
	ExpiresIn float64 `json:"expiresIn"`

	// UserToken describes the authenticated user.
	UserToken UserToken `json:"userToken"`
}

// UserToken is the user description embedded in [LoginResponse].
type UserToken struct {
	ID     string  `json:"id"`
	Email  string  `json:"email"`
	Claims []Claim `json:"claims"`
}
