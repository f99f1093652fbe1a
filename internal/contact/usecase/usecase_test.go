package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/designdynasty/authkit/internal/contact/entity"
	"github.com/designdynasty/authkit/internal/pkg/clock"
	"github.com/designdynasty/authkit/internal/pkg/config"
	"github.com/designdynasty/authkit/internal/pkg/goerror"
	"github.com/designdynasty/authkit/internal/pkg/idempotency"
	"github.com/designdynasty/authkit/internal/pkg/instrument"
	"github.com/designdynasty/authkit/internal/pkg/validator"
)

type fakeRelay struct {
	mu          sync.Mutex
	submissions []entity.Submission
	briefs      []entity.Brief
	acks        []string

	relayErr error
	ackErr   error
}

func (f *fakeRelay) RelaySubmission(_ context.Context, sub entity.Submission) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.relayErr != nil {
		return f.relayErr
	}
	f.submissions = append(f.submissions, sub)
	return nil
}

func (f *fakeRelay) RelayBrief(_ context.Context, brief entity.Brief) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.relayErr != nil {
		return f.relayErr
	}
	f.briefs = append(f.briefs, brief)
	return nil
}

func (f *fakeRelay) AckSender(_ context.Context, to, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.ackErr != nil {
		return f.ackErr
	}
	f.acks = append(f.acks, to)
	return nil
}

type fakeStore struct {
	link string
	err  error
	keys []string
}

func (f *fakeStore) StoreAttachment(_ context.Context, key string, _ entity.Attachment) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return f.link, nil
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

type stubNumberID struct {
	value int64
}

func (s stubNumberID) Generate() int64 {
	return s.value
}

type fixture struct {
	uc    *Usecase
	relay *fakeRelay
	store *fakeStore
	idem  *fakeIdempotency
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  contact:\n    dedupe_ttl_minutes: 10\n"))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	relay := &fakeRelay{}
	store := &fakeStore{link: "https://files.example.com/contact/doc.pdf"}
	idem := newFakeIdempotency()

	uc := New(Dependency{
		RepoEmail:   relay,
		RepoStore:   store,
		Idempotency: idem,
		Validator:   v10,
		Config:      cfg,
		RefID:       stubNumberID{value: 7100},
		Clock:       clock.New(),
		Instrument:  instrument.NewNoop(),
	})

	return &fixture{uc: uc, relay: relay, store: store, idem: idem}
}

func wantCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with code %s, got nil", want)
	}

	var ge *goerror.Error
	if !errors.As(err, &ge) {
		t.Fatalf("expected *goerror.Error, got %T: %v", err, err)
	}
	if got := ge.Code(); got != want {
		t.Fatalf("expected error code %s, got %s (%v)", want, got, err)
	}
}
