package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/designdynasty/authkit/internal/identity/entity"
	"github.com/designdynasty/authkit/internal/pkg/goerror"
)

func TestRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		err := f.uc.Register(context.Background(), RegisterInput{
			Name:   "Jane Doe",
			Email:  " Jane.Doe@Example.COM ",
			Mobile: "628123456789",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		mails := f.mail.byKind("otp")
		if len(mails) != 1 {
			t.Fatalf("expected one otp mail, got %d", len(mails))
		}
		if mails[0].to != "jane.doe@example.com" {
			t.Fatalf("expected normalized recipient, got %q", mails[0].to)
		}
		if mails[0].secret != "123456" {
			t.Fatalf("expected generated code in mail, got %q", mails[0].secret)
		}

		record, err := f.db.GetLatestPendingOtp(context.Background(), "jane.doe@example.com")
		if err != nil {
			t.Fatalf("expected a pending record, got %v", err)
		}
		if got := record.ExpiresAt.Sub(f.clock.now).Minutes(); got != 5 {
			t.Fatalf("expected 5 minute expiry, got %v minutes", got)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		err := f.uc.Register(context.Background(), RegisterInput{
			Name:   "J4ne!",
			Email:  "not-an-email",
			Mobile: "1",
		})

		// Assert
		wantCode(t, err, goerror.CodeInvalidInput)
		if len(f.db.otps) != 0 {
			t.Fatalf("expected no otp record, got %d", len(f.db.otps))
		}
	})

	t.Run("EmailAlreadyRegistered", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.seedUser(t, "taken@example.com", entity.RoleUser)

		// Act
		err := f.uc.Register(context.Background(), RegisterInput{
			Name:   "Jane Doe",
			Email:  "taken@example.com",
			Mobile: "628123456789",
		})

		// Assert
		wantCode(t, err, goerror.CodeConflict)
		if len(f.mail.sent) != 0 {
			t.Fatalf("expected no mail, got %d", len(f.mail.sent))
		}
	})

	t.Run("RepeatedRequestKeepsOlderPendingCodes", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		in := RegisterInput{Name: "Jane Doe", Email: "jane@example.com", Mobile: "628123456789"}
		if err := f.uc.Register(context.Background(), in); err != nil {
			t.Fatalf("first register failed: %v", err)
		}

		// Act
		err := f.uc.Register(context.Background(), in)

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(f.db.otps) != 2 {
			t.Fatalf("expected two records, got %d", len(f.db.otps))
		}
		for _, o := range f.db.otps {
			if o.Status != entity.OtpStatusPending {
				t.Fatalf("expected both records pending, got %s", o.Status)
			}
		}
	})

	t.Run("OtpMailFailure", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.mail.otpErr = errors.New("smtp refused")

		// Act
		err := f.uc.Register(context.Background(), RegisterInput{
			Name:   "Jane Doe",
			Email:  "jane@example.com",
			Mobile: "628123456789",
		})

		// Assert
		wantCode(t, err, goerror.CodeDelivery)
	})
}
