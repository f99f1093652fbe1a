package hash

import (
	"golang.org/x/crypto/bcrypt"
)

// Bcrypt implements Hash with bcrypt plus an application pepper.
//
// The pepper is appended to the plaintext before hashing and verifying, so
// a leaked table of hashes cannot be attacked without the config secret.
type Bcrypt struct {
	cost   int
	pepper string
}

// NewBcrypt returns a bcrypt hasher with the given work factor and pepper.
func NewBcrypt(cost int, pepper string) *Bcrypt {
	return &Bcrypt{cost: cost, pepper: pepper}
}

// Hash derives a bcrypt hash from plaintext plus the pepper.
func (h *Bcrypt) Hash(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext+h.pepper), h.cost)
}

// Verify reports whether plaintext (plus the pepper) matches hashed.
func (h *Bcrypt) Verify(hashed, plaintext string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext+h.pepper)) == nil
}
