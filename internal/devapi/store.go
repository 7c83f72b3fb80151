package devapi

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/kairon-web/internal/domain"
)

// account is a registered user with its password hash.
type account struct {
	user         domain.User
	passwordHash []byte
}

// userStore keeps accounts and refresh tokens in memory.
type userStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*account
	byEmail map[string]uuid.UUID
	refresh map[string]uuid.UUID // token hash -> user id
}

func newUserStore() *userStore {
	return &userStore{
		byID:    make(map[uuid.UUID]*account),
		byEmail: make(map[string]uuid.UUID),
		refresh: make(map[string]uuid.UUID),
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// create adds acc, returning ErrAlreadyExists when the email is taken.
func (s *userStore) create(id uuid.UUID, acc *account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := emailKey(acc.user.Email)
	if _, ok := s.byEmail[key]; ok {
		return domain.ErrAlreadyExists
	}
	s.byID[id] = acc
	s.byEmail[key] = id
	return nil
}

func (s *userStore) getByEmail(email string) (uuid.UUID, *account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[emailKey(email)]
	if !ok {
		return uuid.Nil, nil, domain.ErrNotFound
	}
	return id, s.byID[id], nil
}

func (s *userStore) getByID(id uuid.UUID) (*account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return acc, nil
}

func (s *userStore) saveRefresh(hash string, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh[hash] = id
}

// takeRefresh removes the token so each refresh token is used once.
func (s *userStore) takeRefresh(hash string) (uuid.UUID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.refresh[hash]
	if ok {
		delete(s.refresh, hash)
	}
	return id, ok
}
