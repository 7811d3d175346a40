// Package models defines the data types exchanged with the DineBridge
// backend: users, tables, orders, menu items and live order events.
package models

// User describes the authenticated staff member as returned by the login
// endpoint.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned by the login endpoint. RememberMe echoes the
// server-side session preference when the backend manages it; it is optional.
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`

	RememberMe *bool `json:"rememberMe,omitempty"`
}

// RefreshResponse is returned by the refresh endpoint.
type RefreshResponse struct {
	Token string `json:"token"`

	RememberMe *bool `json:"rememberMe,omitempty"`
}
