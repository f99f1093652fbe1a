package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type stubClock struct {
	now time.Time
}

func (c *stubClock) Now() time.Time {
	return c.now
}

type stubUUID struct{}

func (stubUUID) Generate() string {
	return "test-token-id"
}

func newTestJWT(t *testing.T, clk *stubClock, ttl time.Duration) *Symmetric {
	t.Helper()

	j, err := NewHS512(Config{
		Secret:    []byte(strings.Repeat("s", 64)),
		Issuer:    "authkit",
		Audiences: []string{"authkit"},
		TTL:       ttl,
		Clock:     clk,
		UUID:      stubUUID{},
	})
	if err != nil {
		t.Fatalf("failed to build jwt: %v", err)
	}
	return j
}

func TestNewHS512(t *testing.T) {
	t.Run("RejectsShortSecret", func(t *testing.T) {
		// Act
		_, err := NewHS512(Config{Secret: []byte("too-short")})

		// Assert
		if !errors.Is(err, ErrSigningKeyTooShort) {
			t.Fatalf("expected ErrSigningKeyTooShort, got %v", err)
		}
	})
}

func TestSymmetric(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		// Arrange
		clk := &stubClock{now: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}
		j := newTestJWT(t, clk, time.Hour)

		// Act
		token, err := j.Generate("usr-1", "jane@example.com")
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}
		claims, err := j.Verify(token)

		// Assert
		if err != nil {
			t.Fatalf("expected valid token, got %v", err)
		}
		if claims.Subject != "usr-1" {
			t.Fatalf("expected subject usr-1, got %q", claims.Subject)
		}
		if claims.UserID != "usr-1" {
			t.Fatalf("expected user id usr-1, got %q", claims.UserID)
		}
		if claims.UserEmail != "jane@example.com" {
			t.Fatalf("expected email claim, got %q", claims.UserEmail)
		}
		if got := claims.ExpiresAt.Time.Sub(clk.now); got != time.Hour {
			t.Fatalf("expected one hour lifetime, got %v", got)
		}
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		// Arrange
		clk := &stubClock{now: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}
		j := newTestJWT(t, clk, time.Hour)
		token, err := j.Generate("usr-1", "jane@example.com")
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		// Act
		clk.now = clk.now.Add(time.Hour + time.Minute)
		_, err = j.Verify(token)

		// Assert
		if !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("expected ErrTokenExpired, got %v", err)
		}
	})

	t.Run("TamperedToken", func(t *testing.T) {
		// Arrange
		clk := &stubClock{now: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}
		j := newTestJWT(t, clk, time.Hour)
		token, err := j.Generate("usr-1", "jane@example.com")
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		// Act
		_, err = j.Verify(token[:len(token)-2] + "xx")

		// Assert
		if err == nil {
			t.Fatal("expected verification to fail for a tampered token")
		}
	})

	t.Run("DifferentKeyRejected", func(t *testing.T) {
		// Arrange
		clk := &stubClock{now: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}
		j := newTestJWT(t, clk, time.Hour)

		other, err := NewHS512(Config{
			Secret:    []byte(strings.Repeat("x", 64)),
			Issuer:    "authkit",
			Audiences: []string{"authkit"},
			TTL:       time.Hour,
			Clock:     clk,
			UUID:      stubUUID{},
		})
		if err != nil {
			t.Fatalf("failed to build jwt: %v", err)
		}

		token, err := other.Generate("usr-1", "jane@example.com")
		if err != nil {
			t.Fatalf("failed to generate token: %v", err)
		}

		// Act
		_, err = j.Verify(token)

		// Assert
		if err == nil {
			t.Fatal("expected verification to fail for a foreign key")
		}
	})
}
