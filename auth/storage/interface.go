package storage

import (
	"context"
	"errors"

	"financeserver/auth/users"
)

var (
	// ErrEmailTaken reports a unique-constraint violation on the email
	// column, so callers can tell "already registered" apart from a fault.
	ErrEmailTaken = errors.New("email already taken")

	ErrTimeout     = errors.New("storage timeout")
	ErrUnavailable = errors.New("storage unavailable")
)

type AuthStorage interface {
	CreateUser(ctx context.Context, user users.User, secret users.Secret) (users.User, error)
	GetUserSecret(ctx context.Context, email string) (users.User, users.Secret, error)
}
