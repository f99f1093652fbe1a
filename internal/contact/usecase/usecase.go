package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/designdynasty/authkit/internal/contact/entity"
	"github.com/designdynasty/authkit/internal/pkg/clock"
	"github.com/designdynasty/authkit/internal/pkg/config"
	"github.com/designdynasty/authkit/internal/pkg/goerror"
	"github.com/designdynasty/authkit/internal/pkg/idempotency"
	"github.com/designdynasty/authkit/internal/pkg/instrument"
	"github.com/designdynasty/authkit/internal/pkg/uid"
	"github.com/designdynasty/authkit/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// repoEmail relays a submission to the site owner and acknowledges the
// sender. The relay is the primary outcome; the acknowledgement is best
// effort.
type repoEmail interface {
	RelaySubmission(ctx context.Context, sub entity.Submission) error
	RelayBrief(ctx context.Context, brief entity.Brief) error
	AckSender(ctx context.Context, to, name, reference string) error
}

// repoStore persists an attachment and returns a time-limited download link.
type repoStore interface {
	StoreAttachment(ctx context.Context, key string, att entity.Attachment) (string, error)
}

type Usecase struct {
	repoEmail   repoEmail
	repoStore   repoStore
	idempotency idempotency.Idempotency
	validator   validator.Validator
	cfg         config.Config
	refID       uid.NumberID
	clock       clock.Clocker
	ins         instrument.Instrumentation
}

type Dependency struct {
	RepoEmail   repoEmail
	RepoStore   repoStore
	Idempotency idempotency.Idempotency
	Validator   validator.Validator
	Config      config.Config
	RefID       uid.NumberID
	Clock       clock.Clocker
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoEmail:   dep.RepoEmail,
		repoStore:   dep.RepoStore,
		idempotency: dep.Idempotency,
		validator:   dep.Validator,
		cfg:         dep.Config,
		refID:       dep.RefID,
		clock:       dep.Clock,
		ins:         dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("contact.usecase").Start(ctx, name)
}

// reference yields a short human-quotable submission number.
func (s *Usecase) reference() string {
	return fmt.Sprintf("C-%d", s.refID.Generate())
}

// dedupeKey ties a submission to its sender and content so an impatient
// double click does not relay twice.
func dedupeKey(email string, payload ...string) string {
	h := sha256.New()
	h.Write([]byte(email))
	for _, p := range payload {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return "contact:" + hex.EncodeToString(h.Sum(nil))
}

func (s *Usecase) guardDuplicate(ctx context.Context, key string, fn func(context.Context) error) error {
	err := s.idempotency.Exec(ctx, key, fn,
		idempotency.WithLockDuration(time.Minute),
		idempotency.WithStateTTL(10*time.Minute),
	)
	switch err {
	case idempotency.ErrAlreadyCompleted, idempotency.ErrAlreadyInProgress:
		return goerror.NewBusiness("This submission was already received", goerror.CodeConflict)
	}
	return err
}

// uploadAttachment stores the file and returns a presigned download link
// for the relay mail. A storage failure is not fatal; the attachment still
// rides along in the mail itself.
func (s *Usecase) uploadAttachment(ctx context.Context, reference string, att *entity.Attachment) string {
	if att == nil {
		return ""
	}

	key := path.Join("contact", reference, att.Filename)
	link, err := s.repoStore.StoreAttachment(ctx, key, *att)
	if err != nil {
		slog.WarnContext(ctx, "failed to store contact attachment", "reference", reference, "error", err)
		return ""
	}
	return link
}
