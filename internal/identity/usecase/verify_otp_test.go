package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/designdynasty/authkit/internal/identity/entity"
	"github.com/designdynasty/authkit/internal/pkg/goerror"
)

func TestVerifyOtp(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		record := f.seedOtp(t, "jane@example.com", "123456", f.clock.now.Add(5*time.Minute))

		// Act
		resp, err := f.uc.VerifyOtp(context.Background(), VerifyOtpInput{
			Email: "Jane@Example.com",
			Otp:   "123456",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.Profile.Email != "jane@example.com" {
			t.Fatalf("expected normalized email, got %q", resp.Profile.Email)
		}
		if resp.Profile.Role != entity.RoleUser {
			t.Fatalf("expected default user role, got %q", resp.Profile.Role)
		}

		mails := f.mail.byKind("password")
		if len(mails) != 1 {
			t.Fatalf("expected one password mail, got %d", len(mails))
		}
		if len(mails[0].secret) != 12 {
			t.Fatalf("expected 12 character password, got %q", mails[0].secret)
		}

		user, err := f.db.GetUserByEmail(context.Background(), "jane@example.com")
		if err != nil {
			t.Fatalf("expected account to exist, got %v", err)
		}
		if !f.hash.Verify(user.PasswordHash, mails[0].secret) {
			t.Fatal("stored hash does not match the mailed password")
		}

		if got := f.db.otpByID(record.ID).Status; got != entity.OtpStatusUsed {
			t.Fatalf("expected otp marked used, got %s", got)
		}

		if err := f.gr.Wait(); err != nil {
			t.Fatalf("waiting for async publish: %v", err)
		}
		if len(f.mq.registered) != 1 {
			t.Fatalf("expected one registered event, got %d", len(f.mq.registered))
		}
		if f.mq.registered[0].UserID != user.ID {
			t.Fatalf("expected event for %q, got %q", user.ID, f.mq.registered[0].UserID)
		}
	})

	t.Run("NoPendingRecord", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.VerifyOtp(context.Background(), VerifyOtpInput{
			Email: "nobody@example.com",
			Otp:   "123456",
		})

		// Assert
		wantCode(t, err, goerror.CodeNotFound)
	})

	t.Run("WrongCode", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		record := f.seedOtp(t, "jane@example.com", "123456", f.clock.now.Add(5*time.Minute))

		// Act
		_, err := f.uc.VerifyOtp(context.Background(), VerifyOtpInput{
			Email: "jane@example.com",
			Otp:   "654321",
		})

		// Assert
		wantCode(t, err, goerror.CodeInvalidCode)
		if got := f.db.otpByID(record.ID).Status; got != entity.OtpStatusPending {
			t.Fatalf("expected record untouched, got %s", got)
		}
	})

	t.Run("WrongCodeBeatsExpiry", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		record := f.seedOtp(t, "jane@example.com", "123456", f.clock.now.Add(-time.Minute))

		// Act
		_, err := f.uc.VerifyOtp(context.Background(), VerifyOtpInput{
			Email: "jane@example.com",
			Otp:   "654321",
		})

		// Assert
		wantCode(t, err, goerror.CodeInvalidCode)
		if got := f.db.otpByID(record.ID).Status; got != entity.OtpStatusPending {
			t.Fatalf("expected record untouched, got %s", got)
		}
	})

	t.Run("ExpiredCode", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		record := f.seedOtp(t, "jane@example.com", "123456", f.clock.now.Add(-time.Second))

		// Act
		_, err := f.uc.VerifyOtp(context.Background(), VerifyOtpInput{
			Email: "jane@example.com",
			Otp:   "123456",
		})

		// Assert
		wantCode(t, err, goerror.CodeExpiredCode)
		if got := f.db.otpByID(record.ID).Status; got != entity.OtpStatusExpired {
			t.Fatalf("expected record marked expired, got %s", got)
		}
	})

	t.Run("UsedCodeBehavesLikeMissing", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		record := f.seedOtp(t, "jane@example.com", "123456", f.clock.now.Add(5*time.Minute))
		if _, err := f.db.MarkOtpUsed(context.Background(), record.ID); err != nil {
			t.Fatalf("failed to mark otp used: %v", err)
		}

		// Act
		_, err := f.uc.VerifyOtp(context.Background(), VerifyOtpInput{
			Email: "jane@example.com",
			Otp:   "123456",
		})

		// Assert
		wantCode(t, err, goerror.CodeNotFound)
	})

	t.Run("OnlyNewestPendingRecordCounts", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.seedOtp(t, "jane@example.com", "111111", f.clock.now.Add(5*time.Minute))
		f.seedOtp(t, "jane@example.com", "222222", f.clock.now.Add(5*time.Minute))

		// Act
		_, errOld := f.uc.VerifyOtp(context.Background(), VerifyOtpInput{
			Email: "jane@example.com",
			Otp:   "111111",
		})
		_, errNew := f.uc.VerifyOtp(context.Background(), VerifyOtpInput{
			Email: "jane@example.com",
			Otp:   "222222",
		})

		// Assert
		wantCode(t, errOld, goerror.CodeInvalidCode)
		if errNew != nil {
			t.Fatalf("expected newest code to succeed, got %v", errNew)
		}
	})

	t.Run("AccountAlreadyExists", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.seedUser(t, "jane@example.com", entity.RoleUser)
		record := f.seedOtp(t, "jane@example.com", "123456", f.clock.now.Add(5*time.Minute))

		// Act
		_, err := f.uc.VerifyOtp(context.Background(), VerifyOtpInput{
			Email: "jane@example.com",
			Otp:   "123456",
		})

		// Assert
		wantCode(t, err, goerror.CodeConflict)
		if got := f.db.otpByID(record.ID).Status; got != entity.OtpStatusPending {
			t.Fatalf("expected otp left pending after aborted create, got %s", got)
		}
	})

	t.Run("PasswordMailFailure", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		record := f.seedOtp(t, "jane@example.com", "123456", f.clock.now.Add(5*time.Minute))
		f.mail.passwordErr = errors.New("smtp refused")

		// Act
		_, err := f.uc.VerifyOtp(context.Background(), VerifyOtpInput{
			Email: "jane@example.com",
			Otp:   "123456",
		})

		// Assert
		wantCode(t, err, goerror.CodeDelivery)
		if got := f.db.otpByID(record.ID).Status; got != entity.OtpStatusPending {
			t.Fatalf("expected otp left pending when the mail failed, got %s", got)
		}
	})
}
