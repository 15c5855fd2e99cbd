package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// HasAdmin reports whether the first-time setup already created an admin
	HasAdmin(ctx context.Context) (bool, error)

	// RegisterAdmin creates the first admin and the default settings.
	// Fails with ErrAdminAlreadyExists once an admin exists.
	RegisterAdmin(ctx context.Context, req RegisterAdminRequest) (TokenResponse, error)

	// Logout revokes the access token until it expires
	Logout(ctx context.Context, accessToken string, expiresAt int64) error
}
