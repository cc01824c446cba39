package ports

import (
	"context"

	"github.com/practicewell/records-system/internal/core/domain"
)

// CreateClientInput carries the data for a new client record. The owning
// therapist is taken from the requesting principal, never from the payload.
type CreateClientInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// ClientService defines ownership-scoped use cases on client records.
// Every method takes the requesting principal and enforces the access
// policy before touching the repository.
type ClientService interface {
	List(ctx context.Context, p domain.Principal) ([]domain.Client, error)
	Create(ctx context.Context, p domain.Principal, input CreateClientInput) (*domain.Client, error)
	Update(ctx context.Context, p domain.Principal, id int64, update ClientUpdate) (*domain.Client, error)
	Delete(ctx context.Context, p domain.Principal, id int64) error
}
