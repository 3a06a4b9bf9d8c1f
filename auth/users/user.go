package users

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Secret holds the stored credential. The hash encodes its own salt and work
// factor; the plaintext it was derived from is never kept anywhere.
type Secret struct {
	PasswordHash string
}
