package entity

import (
	"strings"
	"time"
)

// NormalizeEmail lowercases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// User is a registered account keyed uniquely by normalized email.
type User struct {
	ID           string
	Name         string
	Email        string
	Mobile       string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OtpRecord is one passcode issuance for an email lineage.
//
// Records are append-only; the newest pending record per email is the only
// one considered during validation.
type OtpRecord struct {
	ID        string
	Email     string
	Name      string
	Mobile    string
	Code      string
	Status    OtpStatus
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the record is past its expiry at the given time.
func (o OtpRecord) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// NewUser carries the fields needed to create an account.
type NewUser struct {
	Name         string
	Email        string
	Mobile       string
	PasswordHash string
	Role         Role
}

// NewOtp carries the fields needed to persist a fresh passcode issuance.
type NewOtp struct {
	Email     string
	Name      string
	Mobile    string
	Code      string
	ExpiresAt time.Time
}

// Profile is the client-facing view of a user, password hash excluded.
type Profile struct {
	ID        string
	Username  string
	Email     string
	Mobile    string
	Role      Role
	CreatedAt time.Time
}

// ProfileFromUser maps a stored user to its client-facing profile.
func ProfileFromUser(u User) Profile {
	return Profile{
		ID:        u.ID,
		Username:  u.Name,
		Email:     u.Email,
		Mobile:    u.Mobile,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
