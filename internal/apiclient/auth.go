package apiclient

import (
	"context"
	"net/http"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

const (
	loginPath    = "/auth/login"
	registerPath = "/auth/register"
	mePath       = "/auth/me"
)

type doer interface {
	Do(ctx context.Context, method, path string, in, out any) error
}

// AuthAPI calls the auth endpoints.
type AuthAPI struct {
	client doer
}

// NewAuthAPI creates an AuthAPI on top of a Client.
func NewAuthAPI(client doer) *AuthAPI {
	return &AuthAPI{client: client}
}

// Envelope is the success body of the auth API.
type Envelope[T any] struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       T      `json:"data"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued tokens.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Image    string `json:"image,omitempty"`
}

// RegisterResponse carries the token and the created user.
type RegisterResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	User         domain.User `json:"user"`
}

// Login exchanges credentials for tokens.
func (a *AuthAPI) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var env Envelope[LoginResponse]
	if err := a.client.Do(ctx, http.MethodPost, loginPath, req, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Register creates an account and returns its token.
func (a *AuthAPI) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var env Envelope[RegisterResponse]
	if err := a.client.Do(ctx, http.MethodPost, registerPath, req, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// GetMe returns the user owning the token in ctx.
func (a *AuthAPI) GetMe(ctx context.Context) (*domain.User, error) {
	var env Envelope[domain.User]
	if err := a.client.Do(ctx, http.MethodGet, mePath, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}
