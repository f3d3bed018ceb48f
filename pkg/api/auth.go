// Package api holds the wire types of the credential endpoints.
package api

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// RegisterResponse is the success body of register.
type RegisterResponse struct {
	AuthToken string `json:"authtoken"`
	Email     string `json:"email"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the success body of login.
type LoginResponse struct {
	AuthToken string `json:"authtoken"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

// UpdateRequest is the body of PUT /api/auth/update. The target account is
// identified by the request's email header, not the body.
type UpdateRequest struct {
	FirstName string `json:"firstName"`
}

// UpdateResponse is the success body of update.
type UpdateResponse struct {
	AuthToken string `json:"authtoken"`
}

// ErrorResponse is the error body shared by all endpoints.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
