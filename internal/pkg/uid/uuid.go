package uid

import "github.com/google/uuid"

// UUID generates RFC 4122 UUID strings, preferring time-ordered v7.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string. Falls back to random v4 when the
// v7 clock source fails.
func (u *UUID) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// Random generates version 4 UUID strings. Unlike UUID, no part of the
// output is derived from the clock, so it is safe to slice for secrets.
type Random struct{}

// NewRandom returns a v4-only generator.
func NewRandom() *Random {
	return &Random{}
}

// Generate returns a new random v4 UUID string.
func (r *Random) Generate() string {
	return uuid.NewString()
}
