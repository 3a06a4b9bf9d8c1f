package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"financeserver/auth/hasher"
	"financeserver/auth/storage"
	"financeserver/auth/users"
	"financeserver/internal/normalize"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type Service struct {
	storage storage.AuthStorage
	hasher  hasher.Hasher
	cfg     Config
	log     *logrus.Entry
}

func New(cfg Config, st storage.AuthStorage, log *logrus.Logger) *Service {
	return &Service{
		storage: st,
		hasher:  hasher.New(cfg.BcryptCost),
		cfg:     cfg,
		log:     log.WithField("component", "auth"),
	}
}

// Register runs the signup pipeline: validate, hash, persist. Validation
// failures stop the pipeline before any side effect. The plaintext password
// never appears in the returned user, in storage, or in any log line.
func (s *Service) Register(ctx context.Context, email, name, password string) (users.User, error) {
	reg, err := validateRegistration(email, name, password)
	if err != nil {
		return users.User{}, err
	}

	hash, err := s.hasher.Hash(reg.password)
	if err != nil {
		s.log.WithError(err).Error("password hashing failed")
		return users.User{}, fmt.Errorf("register: %w", err)
	}

	now := time.Now().UTC()
	user := users.User{
		ID:        uuid.New(),
		Name:      reg.name,
		Email:     reg.email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored, err := s.storage.CreateUser(ctx, user, users.Secret{PasswordHash: hash})
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return users.User{}, ErrEmailTaken
		}
		s.log.WithError(err).Error("create user failed")
		return users.User{}, fmt.Errorf("register: %w", err)
	}
	s.log.WithField("user_id", stored.ID).Info("user registered")
	return stored, nil
}

// Login checks credentials against the stored secret. A missing account and a
// wrong password are both reported as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (users.User, error) {
	user, secret, err := s.storage.GetUserSecret(ctx, normalize.Email(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, ErrInvalidCredentials
		}
		s.log.WithError(err).Error("secret lookup failed")
		return users.User{}, fmt.Errorf("login: %w", err)
	}
	if !s.hasher.Verify(password, secret.PasswordHash) {
		return users.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// GenerateToken issues the signed artifact returned by a successful signin.
func (s *Service) GenerateToken(userID uuid.UUID) (string, error) {
	expiresIn, err := time.ParseDuration(s.cfg.Expiration)
	if err != nil {
		return "", err
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
		ExpiresAt: now.Add(expiresIn).Unix(),
		IssuedAt:  now.Unix(),
		Subject:   userID.String(),
	})
	return token.SignedString([]byte(s.cfg.Token))
}
