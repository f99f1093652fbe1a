package hash

// Hash abstracts a one-way secret hasher.
type Hash interface {
	// Hash derives a storable digest from plaintext.
	Hash(plaintext string) ([]byte, error)
	// Verify reports whether plaintext matches the stored digest.
	Verify(hashed, plaintext string) bool
}
