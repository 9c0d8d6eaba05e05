package port

import (
	"context"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
)

type AuthService interface {
	Registration(ctx context.Context, req *request.SignUpRequest) (*domain.User, error)
	Authenticate(ctx context.Context, req *request.LoginRequest) (*domain.User, error)
}

// TokenVerifier turns a bearer credential into a caller identity. A failed
// verification is terminal for the request, there is no retry.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}
