package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher produces and checks salted bcrypt hashes. Cost is the bcrypt work
// factor; zero selects bcrypt.DefaultCost.
type Hasher struct {
	cost int
}

func New(cost int) Hasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return Hasher{cost: cost}
}

func (h Hasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (h Hasher) Verify(password string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
