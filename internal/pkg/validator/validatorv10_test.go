package validator

import (
	"errors"
	"testing"
)

func newTestValidator(t *testing.T) *V10Validator {
	t.Helper()

	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}
	return v
}

func wantFieldError(t *testing.T, err error, field string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected validation error on %q, got nil", field)
	}

	var ve V10ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected V10ValidationError, got %T: %v", err, err)
	}
	if _, ok := ve.Values()[field]; !ok {
		t.Fatalf("expected error on field %q, got %v", field, ve.Values())
	}
}

func TestV10Validator(t *testing.T) {
	t.Run("ValidStruct", func(t *testing.T) {
		// Arrange
		v := newTestValidator(t)
		in := struct {
			Email string `validate:"required,email"`
		}{Email: "jane@example.com"}

		// Act & Assert
		if err := v.Validate(in); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		// Arrange
		v := newTestValidator(t)
		in := struct {
			Email string `validate:"required,email"`
		}{Email: "not-an-email"}

		// Act & Assert
		wantFieldError(t, v.Validate(in), "email")
	})

	t.Run("OtpRule", func(t *testing.T) {
		// Arrange
		v := newTestValidator(t)
		type input struct {
			Otp string `validate:"required,otp"`
		}

		cases := []struct {
			name  string
			value string
			valid bool
		}{
			{name: "SixDigits", value: "123456", valid: true},
			{name: "TooShort", value: "12345", valid: false},
			{name: "TooLong", value: "1234567", valid: false},
			{name: "NonNumeric", value: "12a456", valid: false},
			{name: "Signed", value: "-12345", valid: false},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				err := v.Validate(input{Otp: tc.value})
				if tc.valid && err != nil {
					t.Fatalf("expected %q valid, got %v", tc.value, err)
				}
				if !tc.valid && err == nil {
					t.Fatalf("expected %q invalid", tc.value)
				}
			})
		}
	})

	t.Run("AlphaSpaceRule", func(t *testing.T) {
		// Arrange
		v := newTestValidator(t)
		type input struct {
			Name string `validate:"required,alphaspace"`
		}

		if err := v.Validate(input{Name: "Jane Doe"}); err != nil {
			t.Fatalf("expected letters and spaces valid, got %v", err)
		}
		wantFieldError(t, v.Validate(input{Name: "J4ne!"}), "name")
	})

	t.Run("SnakeCaseFieldKeys", func(t *testing.T) {
		// Arrange
		v := newTestValidator(t)
		in := struct {
			OldPassword string `validate:"required"`
		}{}

		// Act & Assert
		wantFieldError(t, v.Validate(in), "old_password")
	})
}
