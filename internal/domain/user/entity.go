// Package user contains the user domain model and the friendship
// relationship. This is core business logic - no external dependencies here.
package user

import (
	"strings"
	"time"

	"github.com/filmorate/filmorate/internal/domain/shared"
)

// UserID represents a unique user identifier assigned by storage on creation.
type UserID int

// IsValid checks that the UserID is positive.
func (id UserID) IsValid() bool {
	return id > 0
}

// Int returns the underlying int value.
func (id UserID) Int() int {
	return int(id)
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: USER
// ══════════════════════════════════════════════════════════════════════════════

// User represents a service account. A User returned by a repository is a
// detached snapshot; the friend set is not a field of the entity, it is a
// relationship queried through FriendshipRepository.
type User struct {
	// ID is assigned by storage on creation.
	ID UserID `json:"id"`

	// Email is required, non-blank, and must contain "@".
	Email string `json:"email"`

	// Login is required, non-blank, and must not contain whitespace.
	// Login is the natural business key used for upsert.
	Login string `json:"login"`

	// Name is the optional display name. A blank name defaults to the
	// login at validation time.
	Name string `json:"name,omitempty"`

	// Birthday is optional and must not be in the future.
	Birthday *time.Time `json:"birthday,omitempty"`
}

// Validate checks the field-level rules of the user.
func (u *User) Validate(now time.Time) error {
	const op = "Validate"

	if strings.TrimSpace(u.Email) == "" {
		return shared.Validationf("user", op, "email must not be blank")
	}
	if !strings.Contains(u.Email, "@") {
		return shared.Validationf("user", op, "email must contain '@'")
	}
	if strings.TrimSpace(u.Login) == "" {
		return shared.Validationf("user", op, "login must not be blank")
	}
	if strings.ContainsAny(u.Login, " \t\n\r") {
		return shared.Validationf("user", op, "login must not contain whitespace")
	}
	if u.Birthday != nil && u.Birthday.After(now) {
		return shared.NewDomainError("user", op, shared.ErrFutureTimestamp, "birthday must not be in the future")
	}
	return nil
}

// DefaultName sets the display name to the login when it is blank.
// Calling it on an already-defaulted user is a no-op.
func (u *User) DefaultName() {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
}

// Clone returns a deep copy of the user.
func (u *User) Clone() *User {
	c := *u
	if u.Birthday != nil {
		b := *u.Birthday
		c.Birthday = &b
	}
	return &c
}
