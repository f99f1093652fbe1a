package usecase

import (
	"context"
	"testing"

	"github.com/designdynasty/authkit/internal/identity/entity"
	"github.com/designdynasty/authkit/internal/pkg/goerror"
)

func TestLogin(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		user, password := f.seedUser(t, "jane@example.com", entity.RoleUser)

		// Act
		resp, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "JANE@example.com",
			Password: password,
		})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.Token != "token-"+user.ID {
			t.Fatalf("expected token for %q, got %q", user.ID, resp.Token)
		}
		if resp.Profile.Email != user.Email {
			t.Fatalf("expected profile for %q, got %q", user.Email, resp.Profile.Email)
		}

		if err := f.gr.Wait(); err != nil {
			t.Fatalf("waiting for async publish: %v", err)
		}
		if len(f.mq.loggedIn) != 1 {
			t.Fatalf("expected one logged-in event, got %d", len(f.mq.loggedIn))
		}
		if f.mq.loggedIn[0].UserID != user.ID {
			t.Fatalf("expected event for %q, got %q", user.ID, f.mq.loggedIn[0].UserID)
		}
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "nobody@example.com",
			Password: "whatever-password",
		})

		// Assert
		wantCode(t, err, goerror.CodeUnauthorized)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.seedUser(t, "jane@example.com", entity.RoleUser)

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{
			Email:    "jane@example.com",
			Password: "wrong-password",
		})

		// Assert
		wantCode(t, err, goerror.CodeUnauthorized)
		if len(f.mq.loggedIn) != 0 {
			t.Fatalf("expected no event, got %d", len(f.mq.loggedIn))
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.Login(context.Background(), LoginInput{Email: "not-an-email"})

		// Assert
		wantCode(t, err, goerror.CodeInvalidInput)
	})
}
