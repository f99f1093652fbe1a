package hash

import "testing"

func TestBcrypt(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		// Arrange
		h := NewBcrypt(4, "pepper")

		// Act
		hashed, err := h.Hash("secret-password")

		// Assert
		if err != nil {
			t.Fatalf("failed to hash: %v", err)
		}
		if !h.Verify(string(hashed), "secret-password") {
			t.Fatal("expected hash to verify against original plaintext")
		}
		if h.Verify(string(hashed), "wrong-password") {
			t.Fatal("expected verification to fail for wrong plaintext")
		}
	})

	t.Run("PepperMismatch", func(t *testing.T) {
		// Arrange
		withPepper := NewBcrypt(4, "pepper-a")
		otherPepper := NewBcrypt(4, "pepper-b")

		// Act
		hashed, err := withPepper.Hash("secret-password")
		if err != nil {
			t.Fatalf("failed to hash: %v", err)
		}

		// Assert
		if otherPepper.Verify(string(hashed), "secret-password") {
			t.Fatal("expected verification to fail under a different pepper")
		}
	})

	t.Run("HashesAreSalted", func(t *testing.T) {
		// Arrange
		h := NewBcrypt(4, "pepper")

		// Act
		first, err := h.Hash("secret-password")
		if err != nil {
			t.Fatalf("failed to hash: %v", err)
		}
		second, err := h.Hash("secret-password")
		if err != nil {
			t.Fatalf("failed to hash: %v", err)
		}

		// Assert
		if string(first) == string(second) {
			t.Fatal("expected distinct hashes for the same plaintext")
		}
	})
}
