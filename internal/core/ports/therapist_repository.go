package ports

import (
	"context"

	"github.com/practicewell/records-system/internal/core/domain"
)

// TherapistUpdate is the allow-list of mutable therapist fields. Nil fields
// are left untouched. PasswordHash must already be hashed by the service.
type TherapistUpdate struct {
	FirstName    *string
	LastName     *string
	Email        *string
	Role         *domain.Role
	PasswordHash *string
}

// TherapistRepository defines persistence for therapist accounts. It also
// backs authentication: the login flow reads credential records through
// FindByEmail and never mutates them.
type TherapistRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Therapist, error)
	FindByID(ctx context.Context, id int64) (*domain.Therapist, error)
	List(ctx context.Context) ([]domain.Therapist, error)
	Create(ctx context.Context, t *domain.Therapist) (*domain.Therapist, error)
	Update(ctx context.Context, id int64, update TherapistUpdate) (*domain.Therapist, error)
	Delete(ctx context.Context, id int64) error
}
