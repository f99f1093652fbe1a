package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/designdynasty/authkit/internal/identity/entity"
	"github.com/designdynasty/authkit/internal/pkg/config"
	"github.com/designdynasty/authkit/internal/pkg/goerror"
	"github.com/designdynasty/authkit/internal/pkg/goroutine"
	"github.com/designdynasty/authkit/internal/pkg/hash"
	"github.com/designdynasty/authkit/internal/pkg/instrument"
	"github.com/designdynasty/authkit/internal/pkg/jwt"
	"github.com/designdynasty/authkit/internal/pkg/uid"
	"github.com/designdynasty/authkit/internal/pkg/validator"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type fakeDB struct {
	mu    sync.Mutex
	seq   int
	now   func() time.Time
	users map[string]*entity.User
	otps  []*entity.OtpRecord

	getUserErr        error
	createUserErr     error
	createOtpErr      error
	updatePasswordErr error
}

func newFakeDB(clk *fakeClock) *fakeDB {
	return &fakeDB{now: clk.Now, users: make(map[string]*entity.User)}
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getUserErr != nil {
		return nil, f.getUserErr
	}

	user, ok := f.users[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}

	cp := *user
	return &cp, nil
}

func (f *fakeDB) GetUserList(context.Context) ([]entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	users := make([]entity.User, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeDB) GetLatestPendingOtp(_ context.Context, email string) (*entity.OtpRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := len(f.otps) - 1; i >= 0; i-- {
		if f.otps[i].Email == email && f.otps[i].Status == entity.OtpStatusPending {
			cp := *f.otps[i]
			return &cp, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) CreateUser(_ context.Context, in entity.NewUser) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createUserErr != nil {
		return nil, f.createUserErr
	}
	if _, ok := f.users[in.Email]; ok {
		return nil, goerror.ErrConflict
	}

	f.seq++
	user := &entity.User{
		ID:           fmt.Sprintf("usr-%d", f.seq),
		Name:         in.Name,
		Email:        in.Email,
		Mobile:       in.Mobile,
		PasswordHash: in.PasswordHash,
		Role:         in.Role.Ensure(),
		CreatedAt:    f.now(),
		UpdatedAt:    f.now(),
	}
	f.users[in.Email] = user

	cp := *user
	return &cp, nil
}

func (f *fakeDB) CreateOtp(_ context.Context, in entity.NewOtp) (*entity.OtpRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createOtpErr != nil {
		return nil, f.createOtpErr
	}

	f.seq++
	record := &entity.OtpRecord{
		ID:        fmt.Sprintf("otp-%d", f.seq),
		Email:     in.Email,
		Name:      in.Name,
		Mobile:    in.Mobile,
		Code:      in.Code,
		Status:    entity.OtpStatusPending,
		ExpiresAt: in.ExpiresAt,
		CreatedAt: f.now(),
	}
	f.otps = append(f.otps, record)

	cp := *record
	return &cp, nil
}

func (f *fakeDB) MarkOtpUsed(_ context.Context, id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, o := range f.otps {
		if o.ID == id && o.Status == entity.OtpStatusPending {
			o.Status = entity.OtpStatusUsed
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDB) MarkOtpExpired(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, o := range f.otps {
		if o.ID == id && o.Status == entity.OtpStatusPending {
			o.Status = entity.OtpStatusExpired
		}
	}
	return nil
}

func (f *fakeDB) UpdateUserPassword(_ context.Context, email, passwordHash string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updatePasswordErr != nil {
		return false, f.updatePasswordErr
	}

	user, ok := f.users[email]
	if !ok {
		return false, nil
	}

	user.PasswordHash = passwordHash
	user.UpdatedAt = f.now()
	return true, nil
}

func (f *fakeDB) otpByID(id string) *entity.OtpRecord {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, o := range f.otps {
		if o.ID == id {
			cp := *o
			return &cp
		}
	}
	return nil
}

type fakeMessaging struct {
	mu         sync.Mutex
	registered []UserRegisteredEvent
	loggedIn   []UserLoggedInEvent
	err        error
}

func (f *fakeMessaging) PublishUserRegistered(_ context.Context, msg UserRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.registered = append(f.registered, msg)
	return nil
}

func (f *fakeMessaging) PublishUserLoggedIn(_ context.Context, msg UserLoggedInEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.loggedIn = append(f.loggedIn, msg)
	return nil
}

type sentMail struct {
	kind   string
	to     string
	name   string
	secret string
}

type fakeEmail struct {
	mu   sync.Mutex
	sent []sentMail

	otpErr      error
	passwordErr error
	resetErr    error
}

func (f *fakeEmail) SendOtp(_ context.Context, to, name, code string, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.otpErr != nil {
		return f.otpErr
	}
	f.sent = append(f.sent, sentMail{kind: "otp", to: to, name: name, secret: code})
	return nil
}

func (f *fakeEmail) SendTemporaryPassword(_ context.Context, to, name, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.passwordErr != nil {
		return f.passwordErr
	}
	f.sent = append(f.sent, sentMail{kind: "password", to: to, name: name, secret: password})
	return nil
}

func (f *fakeEmail) SendResetPassword(_ context.Context, to, name, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.resetErr != nil {
		return f.resetErr
	}
	f.sent = append(f.sent, sentMail{kind: "reset", to: to, name: name, secret: password})
	return nil
}

func (f *fakeEmail) byKind(kind string) []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []sentMail
	for _, m := range f.sent {
		if m.kind == kind {
			out = append(out, m)
		}
	}
	return out
}

type fakeJWT struct {
	err error
}

func (f *fakeJWT) Generate(uid string, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + uid, nil
}

func (f *fakeJWT) Verify(string) (jwt.Claims, error) {
	return jwt.Claims{}, nil
}

type stubUUID struct {
	value string
}

func (s stubUUID) Generate() string {
	return s.value
}

type stubOtpGen struct {
	code string
	err  error
}

func (s stubOtpGen) Generate() (string, error) {
	return s.code, s.err
}

type fixture struct {
	uc    *Usecase
	db    *fakeDB
	mq    *fakeMessaging
	mail  *fakeEmail
	clock *fakeClock
	hash  hash.Hash
	gr    *goroutine.Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  identity:\n    otp_ttl_minutes: 5\n"))
	if err != nil {
		t.Fatalf("failed to build config: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	clk := &fakeClock{now: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}
	db := newFakeDB(clk)
	mq := &fakeMessaging{}
	mail := &fakeEmail{}
	hasher := hash.NewBcrypt(4, "test-pepper")
	gr := goroutine.NewManager(4)

	uc := New(Dependency{
		RepoDB:        db,
		RepoMessaging: mq,
		RepoEmail:     mail,
		Validator:     v10,
		Config:        cfg,
		Bcrypt:        hasher,
		UUID:          stubUUID{value: "9f3b2c1d-4a5e-4f70-8190-a1b2c3d4e5f6"},
		SecretUUID:    uid.NewRandom(),
		OtpGen:        stubOtpGen{code: "123456"},
		Clock:         clk,
		JWT:           &fakeJWT{},
		Instrument:    instrument.NewNoop(),
		Goroutine:     gr,
	})

	return &fixture{uc: uc, db: db, mq: mq, mail: mail, clock: clk, hash: hasher, gr: gr}
}

// seedUser stores an account with the given role and returns it alongside the
// plaintext password that matches its hash.
func (f *fixture) seedUser(t *testing.T, email string, role entity.Role) (*entity.User, string) {
	t.Helper()

	password := "original-password"
	hashed, err := f.hash.Hash(password)
	if err != nil {
		t.Fatalf("failed to hash seed password: %v", err)
	}

	user, err := f.db.CreateUser(context.Background(), entity.NewUser{
		Name:         "Seeded User",
		Email:        email,
		Mobile:       "628123456789",
		PasswordHash: string(hashed),
		Role:         role,
	})
	if err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}

	return user, password
}

// seedOtp stores a pending passcode record directly.
func (f *fixture) seedOtp(t *testing.T, email, code string, expiresAt time.Time) *entity.OtpRecord {
	t.Helper()

	record, err := f.db.CreateOtp(context.Background(), entity.NewOtp{
		Email:     email,
		Name:      "Seeded User",
		Mobile:    "628123456789",
		Code:      code,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		t.Fatalf("failed to seed otp: %v", err)
	}
	return record
}

func errCode(t *testing.T, err error) goerror.Code {
	t.Helper()

	var ge *goerror.Error
	if !errors.As(err, &ge) {
		t.Fatalf("expected *goerror.Error, got %T: %v", err, err)
	}
	return ge.Code()
}

func wantCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with code %s, got nil", want)
	}
	if got := errCode(t, err); got != want {
		t.Fatalf("expected error code %s, got %s (%v)", want, got, err)
	}
}
