package postgres

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // postgresql driver
	"github.com/sirupsen/logrus"

	"financeserver/auth/service"
	"financeserver/auth/storage"
	"financeserver/auth/users"
	"financeserver/gen/finance/public/model"
	"financeserver/gen/finance/public/table"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const codeUniqueViolation = "23505"

type Storage struct {
	db      *sql.DB
	timeout time.Duration
	log     *logrus.Entry
}

var _ storage.AuthStorage = (*Storage)(nil)

func New(db *sql.DB, cfg service.StorageConfig, log *logrus.Logger) *Storage {
	return &Storage{
		db:      db,
		timeout: cfg.Timeout,
		log:     log.WithField("component", "storage"),
	}
}

// CreateUser inserts exactly one row. A duplicate email comes back as
// storage.ErrEmailTaken; concurrent signups for the same address race at the
// unique index, one wins and the rest observe the conflict.
func (s *Storage) CreateUser(ctx context.Context, user users.User, secret users.Secret) (users.User, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	dbUser := model.Users{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: secret.PasswordHash,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
	var stored model.Users
	err := table.Users.
		INSERT(table.Users.AllColumns).
		MODEL(dbUser).
		RETURNING(table.Users.AllColumns.Except(table.Users.PasswordHash)).
		QueryContext(ctx, s.db, &stored)
	if err != nil {
		return users.User{}, s.mapError("users insert", err)
	}
	return convertDBUserToModel(stored), nil
}

// GetUserSecret looks a user up by email and returns the record together with
// the stored credential. Missing users are reported as sql.ErrNoRows.
func (s *Storage) GetUserSecret(ctx context.Context, email string) (users.User, users.Secret, error) {
	ctx, cancel := s.opCtx(ctx)
	defer cancel()

	var dbUser model.Users
	err := table.Users.
		SELECT(table.Users.AllColumns).
		FROM(table.Users).
		WHERE(table.Users.Email.EQ(postgres.String(email))).
		QueryContext(ctx, s.db, &dbUser)
	if err != nil {
		if errors.Is(err, qrm.ErrNoRows) {
			return users.User{}, users.Secret{}, sql.ErrNoRows
		}
		return users.User{}, users.Secret{}, s.mapError("users select", err)
	}
	return convertDBUserToModel(dbUser), users.Secret{PasswordHash: dbUser.PasswordHash}, nil
}

func (s *Storage) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *Storage) mapError(op string, err error) error {
	var pgErr *pgconn.PgError
	switch {
	case errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation:
		return storage.ErrEmailTaken
	case errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err):
		s.log.WithError(err).Warn(op + " timed out")
		return storage.ErrTimeout
	case errors.As(err, &pgErr):
		s.log.WithError(err).Error(op + " failed")
		return err
	default:
		s.log.WithError(err).Error(op + " failed, backend unreachable")
		return storage.ErrUnavailable
	}
}

func convertDBUserToModel(user model.Users) users.User {
	return users.User{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func ConnectionString(cfg service.StorageConfig) string {
	v := make(url.Values)
	if cfg.SSL {
		v.Set("sslmode", "require")
	} else {
		v.Set("sslmode", "disable")
	}
	u := url.URL{
		Scheme:   "postgres",
		Host:     cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Path:     cfg.DBName,
		User:     url.UserPassword(cfg.Username, cfg.Password),
		RawQuery: v.Encode(),
	}
	return u.String()
}
