// Package models defines the persistent and transient data types of the
// password manager server together with their validation rules.
package models

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Role names a capability level attached to an account.
type Role string

const (
	// RoleRegular is assigned to every account at registration and gates
	// access to the secret vault.
	RoleRegular Role = "regular"
	// RoleAdmin additionally allows broadcasting notifications.
	RoleAdmin Role = "admin"
)

// IsValid reports whether the role is one of the predefined roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleRegular, RoleAdmin:
		return true
	default:
		return false
	}
}

// User is an account record. The Password field holds a bcrypt hash, never a
// plain password, and is excluded from JSON serialization. Treat constructed
// values as immutable: role changes and credential changes go through the
// repository, not through field mutation.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Roles     []Role    `json:"roles"`
	CreatedAt time.Time `json:"-"`
}

// NewUser builds a validated account value. The password must already be
// hashed by the caller; hashing is a boundary concern, not a model concern.
// An account always carries at least one role.
func NewUser(email, passwordHash string, roles ...Role) (*User, error) {
	u := &User{Email: email, Password: passwordHash, Roles: roles}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// Validate enforces the account invariants: well-formed email (≤50 chars),
// a non-empty credential hash, and a non-empty set of valid roles.
func (u *User) Validate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Email, validation.Required, validation.Length(1, 50), is.Email),
		validation.Field(&u.Password, validation.Required),
		validation.Field(&u.Roles, validation.Required, validation.By(validRoles)),
	)
}

func validRoles(value any) error {
	roles, _ := value.([]Role)
	for _, r := range roles {
		if !r.IsValid() {
			return errors.New("unknown role")
		}
	}
	return nil
}

// HasRole reports membership of the given role in the account's role set.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
