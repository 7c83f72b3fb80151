package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/kairon-web/internal/apiclient"
)

// Login validates the form and exchanges the credentials for tokens.
// Validation errors are returned before any remote call is made.
func (s *Service) Login(ctx context.Context, input LoginInput) (*Result, error) {
	input.Email = strings.TrimSpace(input.Email)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.api.Login(ctx, apiclient.LoginRequest{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Login: %w", err)
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("auth.Login: empty access token in response")
	}

	s.log.InfoContext(ctx, "user logged in", slog.String("email", input.Email))

	return &Result{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}, nil
}
