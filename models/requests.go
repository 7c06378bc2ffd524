package models

// RegisterUser is the payload of POST /registro.
type RegisterUser struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginUser is the payload of POST /login.
type LoginUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
