package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/practicewell/records-system/internal/core/domain"
	"github.com/practicewell/records-system/internal/core/policy"
	"github.com/practicewell/records-system/internal/core/ports"
)

// ClientService implements ownership-scoped client record use cases.
type ClientService struct {
	repo   ports.ClientRepository
	logger zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, logger: logger}
}

// List returns the active clients visible to the principal: all of them for
// admins, only owned rows for therapists.
func (s *ClientService) List(ctx context.Context, p domain.Principal) ([]domain.Client, error) {
	return s.repo.ListActive(ctx, policy.ClientScope(p))
}

// Create stores a new client record. The owning therapist id is forced to
// the principal's id; a therapist cannot create records on someone else's
// roster, whatever the payload claims.
func (s *ClientService) Create(ctx context.Context, p domain.Principal, input ports.CreateClientInput) (*domain.Client, error) {
	now := time.Now().UTC()
	client := &domain.Client{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Phone:       input.Phone,
		TherapistID: p.ID,
		Status:      domain.ClientActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, client)
	if err != nil {
		s.logger.Error().Err(err).Int64("therapist_id", p.ID).Msg("failed to create client")
		return nil, err
	}

	s.logger.Info().Int64("client_id", created.ID).Int64("therapist_id", p.ID).Msg("client created")
	return created, nil
}

// Update mutates a client record after re-checking ownership against the
// stored row. Trusting the id in the request alone would let a therapist
// rewrite another roster's records.
func (s *ClientService) Update(ctx context.Context, p domain.Principal, id int64, update ports.ClientUpdate) (*domain.Client, error) {
	if err := s.authorizeMutation(ctx, p, policy.OpUpdateClient, id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, update)
}

// Delete removes a client record, subject to the same ownership re-check
// as Update.
func (s *ClientService) Delete(ctx context.Context, p domain.Principal, id int64) error {
	if err := s.authorizeMutation(ctx, p, policy.OpDeleteClient, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("client_id", id).Int64("therapist_id", p.ID).Msg("client deleted")
	return nil
}

// authorizeMutation fetches the stored record and evaluates the access
// policy against its real owner.
func (s *ClientService) authorizeMutation(ctx context.Context, p domain.Principal, op policy.Operation, id int64) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return policy.CanAccessClient(p, op, existing.TherapistID)
}
