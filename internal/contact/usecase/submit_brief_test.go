package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/designdynasty/authkit/internal/pkg/goerror"
)

func TestSubmitBrief(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		resp, err := f.uc.SubmitBrief(context.Background(), SubmitBriefInput{
			Name:        "Jane Doe",
			Email:       "jane@example.com",
			Mobile:      "628123456789",
			Company:     "Acme Studio",
			ProjectType: "E-commerce",
			Budget:      "5k-10k",
			Timeline:    "3 months",
			Description: "We need a storefront with checkout and inventory sync.",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if resp.Reference != "C-7100" {
			t.Fatalf("expected reference C-7100, got %q", resp.Reference)
		}

		if len(f.relay.briefs) != 1 {
			t.Fatalf("expected one relayed brief, got %d", len(f.relay.briefs))
		}
		if f.relay.briefs[0].ProjectType != "E-commerce" {
			t.Fatalf("expected project type relayed, got %q", f.relay.briefs[0].ProjectType)
		}
		if len(f.relay.acks) != 1 {
			t.Fatalf("expected acknowledgement to sender, got %v", f.relay.acks)
		}
	})

	t.Run("MissingProjectType", func(t *testing.T) {
		// Arrange
		f := newFixture(t)

		// Act
		_, err := f.uc.SubmitBrief(context.Background(), SubmitBriefInput{
			Name:        "Jane Doe",
			Email:       "jane@example.com",
			Mobile:      "628123456789",
			Description: "We need a storefront with checkout and inventory sync.",
		})

		// Assert
		wantCode(t, err, goerror.CodeInvalidInput)
	})

	t.Run("DuplicateBrief", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		in := SubmitBriefInput{
			Name:        "Jane Doe",
			Email:       "jane@example.com",
			Mobile:      "628123456789",
			ProjectType: "E-commerce",
			Description: "We need a storefront with checkout and inventory sync.",
		}
		if _, err := f.uc.SubmitBrief(context.Background(), in); err != nil {
			t.Fatalf("first submit failed: %v", err)
		}

		// Act
		_, err := f.uc.SubmitBrief(context.Background(), in)

		// Assert
		wantCode(t, err, goerror.CodeConflict)
		if len(f.relay.briefs) != 1 {
			t.Fatalf("expected a single relay, got %d", len(f.relay.briefs))
		}
	})

	t.Run("RelayFailure", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.relay.relayErr = errors.New("smtp refused")

		// Act
		_, err := f.uc.SubmitBrief(context.Background(), SubmitBriefInput{
			Name:        "Jane Doe",
			Email:       "jane@example.com",
			Mobile:      "628123456789",
			ProjectType: "E-commerce",
			Description: "We need a storefront with checkout and inventory sync.",
		})

		// Assert
		wantCode(t, err, goerror.CodeDelivery)
	})
}
