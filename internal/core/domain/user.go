package domain

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is the persisted identity record. The store assigns ID on insert;
// it is immutable afterwards.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CheckPassword reports whether the plaintext matches the stored credential hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Registration carries the caller-supplied fields for one registration call.
// The password is plaintext here; it is hashed once and discarded.
type Registration struct {
	Username string
	Email    string
	Password string
}

// RegisteredUser is the caller-facing projection of a persisted User.
// It has no credential field at all, so the hash cannot leak through it.
type RegisteredUser struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
}

// NewRegisteredUser projects a persisted User into its response shape.
func NewRegisteredUser(u *User) *RegisteredUser {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return &RegisteredUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Roles:    roles,
	}
}

var ErrUserExists = errors.New("username already taken")
var ErrUserNotFound = errors.New("user not found")
var ErrStoreUnavailable = errors.New("user store unavailable")

// ValidationError names the input field that failed and the rule it violated.
type ValidationError struct {
	Field string
	Rule  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Rule)
}
