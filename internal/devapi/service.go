// Package devapi is a local stand-in for the external auth API. It serves
// the same register/login/me contract from an in-memory user store.
package devapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/kairon-web/internal/auth"
	"github.com/heartmarshall/kairon-web/internal/domain"
)

// Error codes carried in errorCode by 400 responses.
const (
	CodeEmailTaken         = 1
	CodeInvalidCredentials = 2
)

// tokenIssuer is satisfied by *auth.JWTManager.
type tokenIssuer interface {
	GenerateAccessToken(userID uuid.UUID, email string) (string, error)
	ValidateAccessToken(token string) (*auth.Claims, error)
	GenerateRefreshToken() (raw string, hash string, err error)
}

// Service implements the auth API operations.
type Service struct {
	log      *slog.Logger
	users    *userStore
	tokens   tokenIssuer
	hashCost int
}

// NewService creates a Service with an empty user store. hashCost is the
// bcrypt cost; values below bcrypt.MinCost use bcrypt.DefaultCost.
func NewService(logger *slog.Logger, tokens tokenIssuer, hashCost int) *Service {
	if hashCost < bcrypt.MinCost {
		hashCost = bcrypt.DefaultCost
	}
	return &Service{
		log:      logger.With("service", "devapi"),
		users:    newUserStore(),
		tokens:   tokens,
		hashCost: hashCost,
	}
}

// RegisterInput is the body of POST /auth/register.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Image    string `json:"image"`
}

// LoginInput is the body of POST /auth/login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Tokens is the token pair returned by login, register and refresh.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// requestError is a 400 carrying an API error code or a list of messages.
type requestError struct {
	code     int
	messages []string
}

func (e *requestError) Error() string { return strings.Join(e.messages, "; ") }

func invalid(messages ...string) error {
	return &requestError{messages: messages}
}

// Register creates an account and signs it in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Tokens, *domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)

	var msgs []string
	if in.Name == "" {
		msgs = append(msgs, "name should not be empty")
	}
	if !strings.Contains(in.Email, "@") {
		msgs = append(msgs, "email must be an email")
	}
	if len(in.Password) < 6 {
		msgs = append(msgs, "password must be longer than or equal to 6 characters")
	}
	if len(msgs) > 0 {
		return nil, nil, invalid(msgs...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, nil, fmt.Errorf("devapi.Register hash password: %w", err)
	}

	id := uuid.New()
	acc := &account{
		user: domain.User{
			ID:    id.String(),
			Name:  in.Name,
			Email: in.Email,
			Phone: in.Phone,
			Image: in.Image,
		},
		passwordHash: hash,
	}
	if err := s.users.create(id, acc); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, nil, &requestError{code: CodeEmailTaken, messages: []string{"Email already exists"}}
		}
		return nil, nil, fmt.Errorf("devapi.Register: %w", err)
	}

	tokens, err := s.issue(id, acc.user.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("devapi.Register: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", slog.String("user_id", acc.user.ID))

	user := acc.user
	return tokens, &user, nil
}

// Login checks the credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Tokens, error) {
	if strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, invalid("email and password are required")
	}

	badCredentials := &requestError{code: CodeInvalidCredentials, messages: []string{"Invalid credentials"}}

	id, acc, err := s.users.getByEmail(in.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, badCredentials
		}
		return nil, fmt.Errorf("devapi.Login: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(in.Password)); err != nil {
		return nil, badCredentials
	}

	tokens, err := s.issue(id, acc.user.Email)
	if err != nil {
		return nil, fmt.Errorf("devapi.Login: %w", err)
	}

	s.log.InfoContext(ctx, "user logged in", slog.String("user_id", acc.user.ID))
	return tokens, nil
}

// Me returns the user owning the access token.
func (s *Service) Me(_ context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.ValidateAccessToken(token)
	if err != nil {
		return nil, fmt.Errorf("devapi.Me: %w: %w", domain.ErrUnauthorized, err)
	}
	acc, err := s.users.getByID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("devapi.Me: %w", domain.ErrUnauthorized)
	}
	user := acc.user
	return &user, nil
}

// Refresh exchanges a refresh token for a new pair. Each refresh token
// works once.
func (s *Service) Refresh(_ context.Context, refreshToken string) (*Tokens, error) {
	id, ok := s.users.takeRefresh(auth.HashToken(refreshToken))
	if !ok {
		return nil, fmt.Errorf("devapi.Refresh: %w", domain.ErrUnauthorized)
	}
	acc, err := s.users.getByID(id)
	if err != nil {
		return nil, fmt.Errorf("devapi.Refresh: %w", domain.ErrUnauthorized)
	}
	tokens, err := s.issue(id, acc.user.Email)
	if err != nil {
		return nil, fmt.Errorf("devapi.Refresh: %w", err)
	}
	return tokens, nil
}

func (s *Service) issue(id uuid.UUID, email string) (*Tokens, error) {
	access, err := s.tokens.GenerateAccessToken(id, email)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	raw, hash, err := s.tokens.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	s.users.saveRefresh(hash, id)
	return &Tokens{AccessToken: access, RefreshToken: raw}, nil
}
