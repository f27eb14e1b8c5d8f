package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/aquaguard/api/internal/core/ports"
)

// BcryptHasher hashes passwords with bcrypt. The produced string is
// self-describing (algorithm tag, cost, salt and derived key), so the work
// factor can be raised later without invalidating stored hashes.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) ports.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify recomputes under the parameters embedded in hash and compares in
// constant time. Any failure, including a malformed hash, reads as a mismatch.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
