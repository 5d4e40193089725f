package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/vetclinic/clinic-api/internal/core/domain"
	"github.com/vetclinic/clinic-api/internal/core/ports"
)

const defaultPasswordMinLength = 8

// RegistrationService implements new-account registration: validate the
// request, hash the credential, persist the record, return a credential-free
// projection.
type RegistrationService struct {
	repo              ports.UserRepository
	passwordMinLength int
	bcryptCost        int
}

// NewRegistrationService wires a RegistrationService. passwordMinLength
// defaults to 8 when non-positive; bcryptCost falls back to
// bcrypt.DefaultCost when outside the valid range. Tests lower the cost to
// bcrypt.MinCost through the same knob.
func NewRegistrationService(repo ports.UserRepository, passwordMinLength, bcryptCost int) *RegistrationService {
	if passwordMinLength <= 0 {
		passwordMinLength = defaultPasswordMinLength
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &RegistrationService{
		repo:              repo,
		passwordMinLength: passwordMinLength,
		bcryptCost:        bcryptCost,
	}
}

func (s *RegistrationService) Register(ctx context.Context, reg domain.Registration) (*domain.RegisteredUser, error) {
	username := strings.TrimSpace(reg.Username)
	email := strings.TrimSpace(reg.Email)

	if username == "" {
		return nil, &domain.ValidationError{Field: "username", Rule: "must not be empty"}
	}
	if email == "" {
		return nil, &domain.ValidationError{Field: "email", Rule: "must not be empty"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, &domain.ValidationError{Field: "email", Rule: "must be a valid email address"}
	}
	// The minimum counts characters, not bytes, so multi-byte runes do not
	// shorten the effective requirement.
	if utf8.RuneCountInString(reg.Password) < s.passwordMinLength {
		return nil, &domain.ValidationError{
			Field: "password",
			Rule:  fmt.Sprintf("must be at least %d characters", s.passwordMinLength),
		}
	}

	// Short-circuit obvious duplicates before paying for the hash. This is an
	// optimization, not a lock: the store's unique index remains the arbiter
	// for concurrent registrations with the same username.
	switch _, err := s.repo.FindByUsername(ctx, username); {
	case err == nil:
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	return domain.NewRegisteredUser(created), nil
}
