package memory

import (
	"context"
	"database/sql"
	"sync"

	"financeserver/auth/storage"
	"financeserver/auth/users"
)

// Storage is an in-memory AuthStorage for tests. It keeps the same contract
// as the postgres backend: one row per email, conflicts surfaced.
type Storage struct {
	mu      sync.RWMutex
	byEmail map[string]record
}

type record struct {
	user   users.User
	secret users.Secret
}

var _ storage.AuthStorage = (*Storage)(nil)

func New() *Storage {
	return &Storage{byEmail: make(map[string]record)}
}

func (s *Storage) CreateUser(_ context.Context, user users.User, secret users.Secret) (users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[user.Email]; ok {
		return users.User{}, storage.ErrEmailTaken
	}
	s.byEmail[user.Email] = record{user: user, secret: secret}
	return user, nil
}

func (s *Storage) GetUserSecret(_ context.Context, email string) (users.User, users.Secret, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byEmail[email]
	if !ok {
		return users.User{}, users.Secret{}, sql.ErrNoRows
	}
	return rec.user, rec.secret, nil
}

// Len reports the number of stored users.
func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byEmail)
}
