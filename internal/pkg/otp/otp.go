package otp

import (
	"crypto/rand"
	"math/big"
	"strconv"
)

// Generator defines the contract for issuing one-time passcodes.
type Generator interface {
	// Generate returns a new numeric passcode string.
	Generate() (string, error)
}

// Numeric generates uniformly random numeric passcodes of a fixed length.
//
// Codes never carry a leading zero, so a 6-digit generator yields values in
// the range 100000 through 999999 inclusive.
type Numeric struct {
	low  int64
	span int64
}

// NewNumeric constructs a Numeric generator for the given digit count.
//
// If digits is not between 4 and 8, it falls back to 6 digits.
func NewNumeric(digits uint) *Numeric {
	if digits < 4 || digits > 8 {
		digits = 6
	}

	low := int64(1)
	for range digits - 1 {
		low *= 10
	}

	return &Numeric{low: low, span: low * 9}
}

// Generate returns a new passcode.
func (n *Numeric) Generate() (string, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(n.span))
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(n.low+v.Int64(), 10), nil
}
