package ports

import (
	"context"

	"github.com/practicewell/records-system/internal/core/domain"
)

// CreateTherapistInput carries the data for a new therapist account.
// Password arrives in plaintext and is hashed by the service.
type CreateTherapistInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      domain.Role
}

// UpdateTherapistInput is the transport-level allow-list for account
// updates. A non-nil Password is hashed by the service before it reaches
// the repository.
type UpdateTherapistInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Role      *domain.Role
	Password  *string
}

// TherapistService defines admin-only account management use cases.
type TherapistService interface {
	List(ctx context.Context, p domain.Principal) ([]domain.Therapist, error)
	Create(ctx context.Context, p domain.Principal, input CreateTherapistInput) (*domain.Therapist, error)
	Update(ctx context.Context, p domain.Principal, id int64, input UpdateTherapistInput) (*domain.Therapist, error)
	Delete(ctx context.Context, p domain.Principal, id int64) error
}
