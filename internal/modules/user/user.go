package user

import (
	"time"
)

// Role enumerates the account roles on the platform. A role is chosen at
// registration and is immutable afterwards; role changes are an
// administrative concern outside this module.
type Role string

const (
	RoleStudent     Role = "student"
	RoleTutor       Role = "tutor"
	RoleContributor Role = "contributor"
	RoleAdmin       Role = "admin"
)

// SelfRegistrable reports whether the role may be picked on the public
// registration form. Admin accounts are provisioned out-of-band.
func (r Role) SelfRegistrable() bool {
	switch r {
	case RoleStudent, RoleTutor, RoleContributor:
		return true
	}
	return false
}

// AccountState is the derived lifecycle state of an account. It is never
// stored; it is computed from (email_verified_at, approved_at, role) so the
// stored record and the state can not diverge.
type AccountState string

const (
	StateUnverified              AccountState = "unverified"
	StateVerifiedPendingApproval AccountState = "verified_pending_approval"
	StateApproved                AccountState = "approved"
)

// User represents a user in the system.
// This is the core entity for the user module, used across the repository,
// service, and handler layers. PasswordHash is never serialized to clients.
type User struct {
	ID                       string     `db:"id"`
	Name                     string     `db:"name"`
	Email                    string     `db:"email"`
	PasswordHash             string     `db:"password_hash"`
	Role                     Role       `db:"role"`
	EmailVerifiedAt          *time.Time `db:"email_verified_at"`
	ApprovedAt               *time.Time `db:"approved_at"`
	PasswordResetToken       *string    `db:"password_reset_token"`
	PasswordResetTokenExpiry *time.Time `db:"password_reset_token_expiry"`
	CreatedAt                time.Time  `db:"created_at"`
	UpdatedAt                time.Time  `db:"updated_at"`
}

// HasVerifiedEmail reports whether the user completed email verification.
func (u *User) HasVerifiedEmail() bool {
	return u.EmailVerifiedAt != nil
}

// IsApproved reports whether the account may log in once verified. Students
// are auto-approved; other roles need an explicit administrative approval
// recorded in approved_at.
func (u *User) IsApproved() bool {
	return u.ApprovedAt != nil || u.Role == RoleStudent
}

func (u *User) IsStudent() bool { return u.Role == RoleStudent }
func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }

// AccountState derives the lifecycle state from the nullable timestamp pair
// and the role.
func (u *User) AccountState() AccountState {
	if !u.HasVerifiedEmail() {
		return StateUnverified
	}
	if !u.IsApproved() {
		return StateVerifiedPendingApproval
	}
	return StateApproved
}
