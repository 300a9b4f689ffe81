package model

// Default role assigned at registration.
const RoleUser = "user"

// User represents a registered account.
type User struct {
	ID       string `json:"_id"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Photo    string `json:"photo,omitempty"`
	Role     string `json:"role"`
}

// CredentialsRequest is the body of register and login calls.
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is returned after a successful credential check.
type LoginResponse struct {
	Message string    `json:"message"`
	User    LoginUser `json:"user"`
}

// LoginUser is the public part of the authenticated user.
type LoginUser struct {
	Email string `json:"email"`
}
