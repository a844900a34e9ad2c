package models

// CreateUserRequest is the JSON body of the public registration endpoint.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UpdateUserRequest is the JSON body of the user update endpoint.
// Only the display name can be changed.
type UpdateUserRequest struct {
	Name string `json:"name"`
}

// LoginRequest is the JSON body of the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the JSON body returned on a successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
