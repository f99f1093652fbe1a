package usecase

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/designdynasty/authkit/internal/pkg/clock"
	"github.com/designdynasty/authkit/internal/pkg/config"
	"github.com/designdynasty/authkit/internal/pkg/idempotency"
	"github.com/designdynasty/authkit/internal/pkg/instrument"
	"github.com/designdynasty/authkit/internal/pkg/mail"
	"github.com/designdynasty/authkit/internal/pkg/validator"
)

type fakeMail struct {
	mu       sync.Mutex
	sent     []mail.Message
	failures int
	attempts int
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.attempts++
	if f.attempts <= f.failures {
		return errors.New("smtp refused")
	}
	f.sent = append(f.sent, msg)
	return nil
}

// fakeIdempotency mimics StateTracker semantics against an in-memory map.
type fakeIdempotency struct {
	mu     sync.Mutex
	states map[string]idempotency.State
}

func newFakeIdempotency() *fakeIdempotency {
	return &fakeIdempotency{states: make(map[string]idempotency.State)}
}

func (f *fakeIdempotency) Acquire(_ context.Context, key string, _ time.Duration) (idempotency.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if st, ok := f.states[key]; ok {
		return st, nil
	}
	f.states[key] = idempotency.StateInProgress
	return idempotency.StateNone, nil
}

func (f *fakeIdempotency) MarkCompleted(_ context.Context, key string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.states[key] = idempotency.StateCompleted
	return nil
}

func (f *fakeIdempotency) MarkFailed(_ context.Context, key string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.states[key] = idempotency.StateFailed
	return nil
}

func (f *fakeIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	state, err := f.Acquire(ctx, key, time.Minute)
	if err != nil {
		return err
	}

	switch state {
	case idempotency.StateInProgress:
		return idempotency.ErrAlreadyInProgress
	case idempotency.StateCompleted:
		return idempotency.ErrAlreadyCompleted
	case idempotency.StateFailed:
		return idempotency.ErrAlreadyFailed
	}

	if err := fn(ctx); err != nil {
		_ = f.MarkFailed(ctx, key, time.Minute)
		return err
	}
	return f.MarkCompleted(ctx, key, time.Minute)
}

type fixture struct {
	uc   *Usecase
	mail *fakeMail
	idem *fakeIdempotency
}

func newFixture(t *testing.T, adminEmails string) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(
		"modules:\n  notification:\n    admin_emails: "+strconv.Quote(adminEmails)+"\n"))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	fm := &fakeMail{}
	idem := newFakeIdempotency()

	uc := NewNotification(Dependency{
		RepoMail:    fm,
		Idempotency: idem,
		Config:      cfg,
		Clock:       clock.New(),
		Validator:   v10,
		Instrument:  instrument.NewNoop(),
	})

	return &fixture{uc: uc, mail: fm, idem: idem}
}

func registeredEvent() ConsumeUserRegisteredInput {
	return ConsumeUserRegisteredInput{
		EventID:      "evt-1",
		UserID:       "usr-1",
		Email:        "jane@example.com",
		Name:         "Jane Doe",
		Mobile:       "628123456789",
		RegisteredAt: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestConsumeUserRegistered(t *testing.T) {
	t.Run("SendsAdminMail", func(t *testing.T) {
		// Arrange
		f := newFixture(t, "admin@example.com,ops@example.com")

		// Act
		err := f.uc.ConsumeUserRegistered(context.Background(), registeredEvent())

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(f.mail.sent) != 1 {
			t.Fatalf("expected one mail, got %d", len(f.mail.sent))
		}
		if len(f.mail.sent[0].To) != 2 {
			t.Fatalf("expected both admins as recipients, got %v", f.mail.sent[0].To)
		}
	})

	t.Run("RedeliveredEventSendsOnce", func(t *testing.T) {
		// Arrange
		f := newFixture(t, "admin@example.com")
		if err := f.uc.ConsumeUserRegistered(context.Background(), registeredEvent()); err != nil {
			t.Fatalf("first consume failed: %v", err)
		}

		// Act
		err := f.uc.ConsumeUserRegistered(context.Background(), registeredEvent())

		// Assert
		if err != nil {
			t.Fatalf("expected redelivery to be acked, got %v", err)
		}
		if len(f.mail.sent) != 1 {
			t.Fatalf("expected a single mail, got %d", len(f.mail.sent))
		}
	})

	t.Run("MalformedEventIsDropped", func(t *testing.T) {
		// Arrange
		f := newFixture(t, "admin@example.com")

		// Act
		err := f.uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{
			EventID: "evt-2",
			Email:   "not-an-email",
		})

		// Assert
		if err != nil {
			t.Fatalf("expected malformed event dropped without error, got %v", err)
		}
		if len(f.mail.sent) != 0 {
			t.Fatalf("expected no mail, got %d", len(f.mail.sent))
		}
	})

	t.Run("NoRecipientsConfigured", func(t *testing.T) {
		// Arrange
		f := newFixture(t, "")

		// Act
		err := f.uc.ConsumeUserRegistered(context.Background(), registeredEvent())

		// Assert
		if err != nil {
			t.Fatalf("expected skip without error, got %v", err)
		}
		if len(f.mail.sent) != 0 {
			t.Fatalf("expected no mail, got %d", len(f.mail.sent))
		}
	})

	t.Run("TransientSendFailureIsRetried", func(t *testing.T) {
		// Arrange
		f := newFixture(t, "admin@example.com")
		f.mail.failures = 1

		// Act
		err := f.uc.ConsumeUserRegistered(context.Background(), registeredEvent())

		// Assert
		if err != nil {
			t.Fatalf("expected retry to succeed, got %v", err)
		}
		if f.mail.attempts != 2 {
			t.Fatalf("expected two attempts, got %d", f.mail.attempts)
		}
		if len(f.mail.sent) != 1 {
			t.Fatalf("expected one mail, got %d", len(f.mail.sent))
		}
	})
}

func TestConsumeUserLoggedIn(t *testing.T) {
	t.Run("SendsAdminMail", func(t *testing.T) {
		// Arrange
		f := newFixture(t, "admin@example.com")

		// Act
		err := f.uc.ConsumeUserLoggedIn(context.Background(), ConsumeUserLoggedInInput{
			EventID:  "evt-3",
			UserID:   "usr-1",
			Email:    "jane@example.com",
			Name:     "Jane Doe",
			LoggedAt: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC),
		})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(f.mail.sent) != 1 {
			t.Fatalf("expected one mail, got %d", len(f.mail.sent))
		}
		if f.mail.sent[0].Subject != "User login" {
			t.Fatalf("expected login subject, got %q", f.mail.sent[0].Subject)
		}
	})

	t.Run("RedeliveredEventSendsOnce", func(t *testing.T) {
		// Arrange
		f := newFixture(t, "admin@example.com")
		in := ConsumeUserLoggedInInput{
			EventID:  "evt-4",
			UserID:   "usr-1",
			Email:    "jane@example.com",
			Name:     "Jane Doe",
			LoggedAt: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC),
		}
		if err := f.uc.ConsumeUserLoggedIn(context.Background(), in); err != nil {
			t.Fatalf("first consume failed: %v", err)
		}

		// Act
		err := f.uc.ConsumeUserLoggedIn(context.Background(), in)

		// Assert
		if err != nil {
			t.Fatalf("expected redelivery to be acked, got %v", err)
		}
		if len(f.mail.sent) != 1 {
			t.Fatalf("expected a single mail, got %d", len(f.mail.sent))
		}
	})
}
