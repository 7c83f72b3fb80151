package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/kairon-web/internal/apiclient"
)

// Register validates the form and creates the account remotely.
// ConfirmPassword is checked locally and never sent.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Result, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.api.Register(ctx, apiclient.RegisterRequest{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Phone:    input.Phone,
	})
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("auth.Register: empty access token in response")
	}

	user := resp.User
	s.log.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return &Result{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		User:         &user,
	}, nil
}
