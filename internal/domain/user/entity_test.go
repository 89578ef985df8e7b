package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmorate/filmorate/internal/domain/shared"
)

var now = time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

func validUser() *User {
	birthday := time.Date(1990, time.May, 3, 0, 0, 0, 0, time.UTC)
	return &User{
		Email:    "neo@example.com",
		Login:    "neo",
		Name:     "Thomas Anderson",
		Birthday: &birthday,
	}
}

func TestUserValidate_OK(t *testing.T) {
	assert.NoError(t, validUser().Validate(now))
}

func TestUserValidate_Email(t *testing.T) {
	u := validUser()

	u.Email = ""
	assert.True(t, shared.IsValidation(u.Validate(now)))

	u.Email = "not-an-email"
	assert.True(t, shared.IsValidation(u.Validate(now)), "email must contain '@'")
}

func TestUserValidate_Login(t *testing.T) {
	u := validUser()

	u.Login = ""
	assert.True(t, shared.IsValidation(u.Validate(now)))

	u.Login = "neo anderson"
	assert.True(t, shared.IsValidation(u.Validate(now)), "whitespace in login is rejected")

	u.Login = "neo\tanderson"
	assert.True(t, shared.IsValidation(u.Validate(now)))
}

func TestUserValidate_Birthday(t *testing.T) {
	u := validUser()

	today := now
	u.Birthday = &today
	assert.NoError(t, u.Validate(now), "a birthday of today is allowed")

	future := now.AddDate(0, 0, 1)
	u.Birthday = &future
	err := u.Validate(now)
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))

	u.Birthday = nil
	assert.NoError(t, u.Validate(now), "absent birthday is allowed")
}

func TestUserDefaultName(t *testing.T) {
	u := validUser()
	u.Name = ""

	u.DefaultName()
	assert.Equal(t, "neo", u.Name)

	// Idempotent: a second call changes nothing.
	u.DefaultName()
	assert.Equal(t, "neo", u.Name)

	u2 := validUser()
	u2.DefaultName()
	assert.Equal(t, "Thomas Anderson", u2.Name, "an explicit name is kept")
}

func TestUserClone_Independence(t *testing.T) {
	u := validUser()
	c := u.Clone()

	c.Login = "morpheus"
	*c.Birthday = now

	assert.Equal(t, "neo", u.Login)
	assert.Equal(t, 1990, u.Birthday.Year())
}
