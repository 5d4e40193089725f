package ports

import (
	"context"

	"github.com/vetclinic/clinic-api/internal/core/domain"
)

type RegistrationService interface {
	Register(ctx context.Context, reg domain.Registration) (*domain.RegisteredUser, error)
}
