// Package services contains the typed API surface of the DineBridge
// backend. Each service wraps the shared resilient client with the
// endpoints of one back-office area.
package services

import (
	"context"
	"net/http"

	"github.com/dinebridge/dinebridge/internal/client/api"
	"github.com/dinebridge/dinebridge/internal/client/models"
)

// AuthService talks to the authentication endpoints. It satisfies
// session.AuthAPI.
type AuthService struct {
	client *api.Client
}

// NewAuthService constructs an AuthService bound to the given API client.
func NewAuthService(client *api.Client) *AuthService {
	return &AuthService{client: client}
}

// Login exchanges email/password for a user profile and bearer token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	err := s.client.Do(ctx, &api.Request{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Body:   models.LoginRequest{Email: email, Password: password},
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Refresh renews the current credential. No body is needed; the ambient
// credential identifies the session.
func (s *AuthService) Refresh(ctx context.Context) (*models.RefreshResponse, error) {
	var resp models.RefreshResponse
	err := s.client.Do(ctx, &api.Request{
		Method: http.MethodPost,
		Path:   "/auth/refresh",
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout notifies the server that the session is over. The response body
// is ignored.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.client.Do(ctx, &api.Request{
		Method: http.MethodPost,
		Path:   "/auth/logout",
	}, nil)
}
