package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/designdynasty/authkit/internal/identity/entity"
	"github.com/designdynasty/authkit/internal/pkg/clock"
	"github.com/designdynasty/authkit/internal/pkg/config"
	"github.com/designdynasty/authkit/internal/pkg/goerror"
	"github.com/designdynasty/authkit/internal/pkg/goroutine"
	"github.com/designdynasty/authkit/internal/pkg/hash"
	"github.com/designdynasty/authkit/internal/pkg/instrument"
	"github.com/designdynasty/authkit/internal/pkg/jwt"
	"github.com/designdynasty/authkit/internal/pkg/otp"
	"github.com/designdynasty/authkit/internal/pkg/uid"
	"github.com/designdynasty/authkit/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

// tempPasswordLength is the size of generated one-time passwords.
const tempPasswordLength = 12

type UserRegisteredEvent struct {
	UserID       string
	Email        string
	Name         string
	Mobile       string
	RegisteredAt time.Time
}

type UserLoggedInEvent struct {
	UserID   string
	Email    string
	Name     string
	LoggedAt time.Time
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
	PublishUserLoggedIn(ctx context.Context, msg UserLoggedInEvent) error
}

// repoEmail delivers secret-bearing mails synchronously. A failed send is
// surfaced because the recipient has no other way to obtain the secret.
type repoEmail interface {
	SendOtp(ctx context.Context, to, name, code string, expiresAt time.Time) error
	SendTemporaryPassword(ctx context.Context, to, name, password string) error
	SendResetPassword(ctx context.Context, to, name, password string) error
}

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserList(ctx context.Context) ([]entity.User, error)
	GetLatestPendingOtp(ctx context.Context, email string) (*entity.OtpRecord, error)

	CreateUser(ctx context.Context, in entity.NewUser) (*entity.User, error)
	CreateOtp(ctx context.Context, in entity.NewOtp) (*entity.OtpRecord, error)

	MarkOtpUsed(ctx context.Context, id string) (bool, error)
	MarkOtpExpired(ctx context.Context, id string) error
	UpdateUserPassword(ctx context.Context, email, passwordHash string) (bool, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	repoEmail     repoEmail
	validator     validator.Validator
	cfg           config.Config
	bcrypt        hash.Hash
	uuid          uid.StringID
	secretUUID    uid.StringID
	otpGen        otp.Generator
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	RepoEmail     repoEmail
	Validator     validator.Validator
	Config        config.Config
	Bcrypt        hash.Hash
	UUID          uid.StringID
	SecretUUID    uid.StringID
	OtpGen        otp.Generator
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		repoEmail:     dep.RepoEmail,
		validator:     dep.Validator,
		cfg:           dep.Config,
		bcrypt:        dep.Bcrypt,
		uuid:          dep.UUID,
		secretUUID:    dep.SecretUUID,
		otpGen:        dep.OtpGen,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func (s *Usecase) otpTTL() time.Duration {
	ttl := s.cfg.GetMinute("modules.identity.otp_ttl_minutes")
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return ttl
}

// issueOtp generates a fresh passcode and persists it as pending.
//
// Older pending records for the same email are left untouched; only the
// newest one is consulted during validation.
func (s *Usecase) issueOtp(ctx context.Context, email, name, mobile string) (*entity.OtpRecord, error) {
	code, err := s.otpGen.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate otp code", "error", err)
		return nil, goerror.NewServer(err)
	}

	record, err := s.repoDB.CreateOtp(ctx, entity.NewOtp{
		Email:     email,
		Name:      name,
		Mobile:    mobile,
		Code:      code,
		ExpiresAt: s.clock.Now().Add(s.otpTTL()),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create otp", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return record, nil
}

// validateOtp checks a submitted code against the newest pending record.
//
// Failure order is fixed: missing record, then code mismatch, then expiry.
// The expiry transition is the only write this performs; consuming the
// record stays with the caller so it is spent only after the dependent
// action commits.
func (s *Usecase) validateOtp(ctx context.Context, email, code string) (*entity.OtpRecord, error) {
	record, err := s.repoDB.GetLatestPendingOtp(ctx, email)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no pending otp for email", "email", email)
		return nil, goerror.NewBusiness("No OTP request found for this email", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get latest pending otp", "email", email, "error", err)
		return nil, goerror.NewServer(err)
	}

	if record.Code != code {
		slog.WarnContext(ctx, "otp code mismatch", "email", email)
		return nil, goerror.NewBusiness("Invalid OTP", goerror.CodeInvalidCode)
	}

	if record.Expired(s.clock.Now()) {
		if err := s.repoDB.MarkOtpExpired(ctx, record.ID); err != nil {
			slog.ErrorContext(ctx, "failed to mark otp expired", "otp_id", record.ID, "error", err)
			return nil, goerror.NewServer(err)
		}

		return nil, goerror.NewBusiness("OTP has expired", goerror.CodeExpiredCode)
	}

	return record, nil
}

// consumeOtp spends a validated record. A lost compare-and-swap means a
// concurrent request consumed it first; that is logged, not fatal, because
// the dependent action already committed.
func (s *Usecase) consumeOtp(ctx context.Context, id string) {
	matched, err := s.repoDB.MarkOtpUsed(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to mark otp used", "otp_id", id, "error", err)
		return
	}
	if !matched {
		slog.WarnContext(ctx, "otp already consumed by concurrent request", "otp_id", id)
	}
}

// generatePassword returns a random 12-character alphanumeric secret derived
// from a v4 UUID with the dashes stripped. The time-ordered generator used
// for event and token IDs must never feed this path: its leading bytes are a
// timestamp, which would make the password guessable from the clock.
func (s *Usecase) generatePassword() string {
	raw := strings.ReplaceAll(s.secretUUID.Generate(), "-", "")
	if len(raw) > tempPasswordLength {
		raw = raw[:tempPasswordLength]
	}
	return raw
}
