package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/designdynasty/authkit/internal/identity/entity"
	"github.com/designdynasty/authkit/internal/pkg/goerror"
)

func TestPasswordForgot(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		user, _ := f.seedUser(t, "jane@example.com", entity.RoleUser)

		// Act
		err := f.uc.PasswordForgot(context.Background(), PasswordForgotInput{Email: "Jane@Example.com"})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		record, err := f.db.GetLatestPendingOtp(context.Background(), user.Email)
		if err != nil {
			t.Fatalf("expected a pending record, got %v", err)
		}
		if record.Code != "123456" {
			t.Fatalf("expected generated code, got %q", record.Code)
		}

		mails := f.mail.byKind("otp")
		if len(mails) != 1 {
			t.Fatalf("expected one otp mail, got %d", len(mails))
		}
		if mails[0].to != user.Email {
			t.Fatalf("expected mail to %q, got %q", user.Email, mails[0].to)
		}
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		err := f.uc.PasswordForgot(context.Background(), PasswordForgotInput{Email: "nobody@example.com"})

		// Assert
		wantCode(t, err, goerror.CodeNotFound)
		if len(f.mail.sent) != 0 {
			t.Fatalf("expected no mail, got %d", len(f.mail.sent))
		}
	})

	t.Run("OtpMailFailure", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.seedUser(t, "jane@example.com", entity.RoleUser)
		f.mail.otpErr = errors.New("smtp refused")

		// Act
		err := f.uc.PasswordForgot(context.Background(), PasswordForgotInput{Email: "jane@example.com"})

		// Assert
		wantCode(t, err, goerror.CodeDelivery)
	})
}
