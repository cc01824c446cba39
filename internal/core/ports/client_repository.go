package ports

import (
	"context"

	"github.com/practicewell/records-system/internal/core/domain"
)

// ClientUpdate is the allow-list of mutable client fields. Nil fields are
// left untouched. The owning therapist id is deliberately absent: ownership
// is never client-supplied.
type ClientUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Status    *domain.ClientStatus
}

// ClientRepository defines persistence for client records.
type ClientRepository interface {
	// ListActive returns active clients. ownerID 0 means unrestricted
	// (admin view); any other value filters by owning therapist.
	ListActive(ctx context.Context, ownerID int64) ([]domain.Client, error)
	FindByID(ctx context.Context, id int64) (*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Update(ctx context.Context, id int64, update ClientUpdate) (*domain.Client, error)
	Delete(ctx context.Context, id int64) error
}
