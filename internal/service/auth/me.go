package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/heartmarshall/kairon-web/internal/apierr"
	"github.com/heartmarshall/kairon-web/internal/domain"
	"github.com/heartmarshall/kairon-web/pkg/ctxutil"
)

// Me returns the user for the session token in ctx.
// Returns ErrUnauthorized when ctx has no token or the API rejects it with
// 401; callers clear the session cookies in that case.
func (s *Service) Me(ctx context.Context) (*domain.User, error) {
	if _, ok := ctxutil.AccessTokenFromCtx(ctx); !ok {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.api.GetMe(ctx)
	if err != nil {
		if status, ok := apierr.StatusOf(err); ok && status == http.StatusUnauthorized {
			s.log.InfoContext(ctx, "session token rejected")
			return nil, fmt.Errorf("auth.Me: %w: %w", domain.ErrUnauthorized, err)
		}
		return nil, fmt.Errorf("auth.Me: %w", err)
	}

	return user, nil
}
