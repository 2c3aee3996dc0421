package accounts

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher produces and verifies salted one-way password hashes. The cost
// factor is configuration so operators can tune hashing time without a code
// change.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Non-positive costs
// fall back to the package default; out-of-range costs are clamped.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = defaultHashCost()
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

// HashPassword will generate a password hash. Equal plaintexts produce
// different hashes across calls because bcrypt salts each one.
func (h *Hasher) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(hash), err
}

// ComparePasswordAndHash will validate the given cleartext password matches
// the hashed password. Any failure, including a malformed hash, maps to
// ErrInvalidCredentials so the comparison never leaks why it failed.
func (h *Hasher) ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
