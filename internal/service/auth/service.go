package auth

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/kairon-web/internal/apiclient"
	"github.com/heartmarshall/kairon-web/internal/domain"
)

// authAPI defines the remote auth endpoints needed by the auth service.
type authAPI interface {
	Login(ctx context.Context, req apiclient.LoginRequest) (*apiclient.LoginResponse, error)
	Register(ctx context.Context, req apiclient.RegisterRequest) (*apiclient.RegisterResponse, error)
	GetMe(ctx context.Context) (*domain.User, error)
}

// Service implements the login, registration and current-user flows on top
// of the external auth API. Tokens are returned to the caller, which owns
// the cookies.
type Service struct {
	log *slog.Logger
	api authAPI
}

// NewService creates a new auth service instance.
func NewService(logger *slog.Logger, api authAPI) *Service {
	return &Service{
		log: logger.With("service", "auth"),
		api: api,
	}
}

// Result is returned by Login and Register.
type Result struct {
	AccessToken  string
	RefreshToken string
	// User is set by Register; Login leaves it nil.
	User *domain.User
}
