package entity

import "errors"

var (
	ErrRoleUnknown      = errors.New("identity: role is unknown")
	ErrOtpStatusUnknown = errors.New("identity: otp status is unknown")
)

// Role describes what a user may do. Most accounts are plain users; admins
// can additionally list accounts.
type Role string

const (
	// RoleUser is the default role assigned at registration.
	RoleUser Role = "user"

	// RoleAdmin can access administrative endpoints.
	RoleAdmin Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Ensure returns the role if valid, falling back to RoleUser.
func (r Role) Ensure() Role {
	if r.IsValid() {
		return r
	}
	return RoleUser
}

// ParseRole converts a raw string into a Role.
func ParseRole(raw string) (Role, error) {
	r := Role(raw)
	if !r.IsValid() {
		return "", ErrRoleUnknown
	}
	return r, nil
}

// OtpStatus is the lifecycle state of a passcode record.
type OtpStatus string

const (
	// OtpStatusPending means issued and usable.
	OtpStatusPending OtpStatus = "pending"

	// OtpStatusUsed means consumed by a successful verification.
	OtpStatusUsed OtpStatus = "used"

	// OtpStatusExpired means a validation attempt found the record past expiry.
	OtpStatusExpired OtpStatus = "expired"
)

func (s OtpStatus) String() string {
	return string(s)
}

// IsValid reports whether the status is one of the known values.
func (s OtpStatus) IsValid() bool {
	switch s {
	case OtpStatusPending, OtpStatusUsed, OtpStatusExpired:
		return true
	default:
		return false
	}
}

// ParseOtpStatus converts a raw string into an OtpStatus.
func ParseOtpStatus(raw string) (OtpStatus, error) {
	s := OtpStatus(raw)
	if !s.IsValid() {
		return "", ErrOtpStatusUnknown
	}
	return s, nil
}
