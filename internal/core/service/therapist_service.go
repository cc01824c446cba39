package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/practicewell/records-system/internal/core/domain"
	"github.com/practicewell/records-system/internal/core/policy"
	"github.com/practicewell/records-system/internal/core/ports"
)

// bcryptCost matches the cost used when the store was originally seeded.
const bcryptCost = 10

// TherapistService implements admin-only account management.
type TherapistService struct {
	repo   ports.TherapistRepository
	logger zerolog.Logger
}

func NewTherapistService(repo ports.TherapistRepository, logger zerolog.Logger) *TherapistService {
	return &TherapistService{repo: repo, logger: logger}
}

// List returns every therapist account. Admin only.
func (s *TherapistService) List(ctx context.Context, p domain.Principal) ([]domain.Therapist, error) {
	if err := policy.CanManageTherapists(p); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

// Create registers a new therapist account with a freshly hashed password.
// Admin only.
func (s *TherapistService) Create(ctx context.Context, p domain.Principal, input ports.CreateTherapistInput) (*domain.Therapist, error) {
	if err := policy.CanManageTherapists(p); err != nil {
		return nil, err
	}
	if input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	role := input.Role
	if role == "" {
		role = domain.RoleTherapist
	}
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	therapist := &domain.Therapist{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, therapist)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("therapist_id", created.ID).Str("email", created.Email).Msg("therapist account created")
	return created, nil
}

// Update applies the allow-listed fields to an account. A plaintext
// password in the input is hashed here; the repository only ever sees the
// hash. Admin only.
func (s *TherapistService) Update(ctx context.Context, p domain.Principal, id int64, input ports.UpdateTherapistInput) (*domain.Therapist, error) {
	if err := policy.CanManageTherapists(p); err != nil {
		return nil, err
	}
	if input.Role != nil && !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	update := ports.TherapistUpdate{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Role:      input.Role,
	}
	if input.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, err
		}
		hashed := string(hash)
		update.PasswordHash = &hashed
	}

	return s.repo.Update(ctx, id, update)
}

// Delete removes an account. Admin only, and never the admin's own account:
// the self-deletion guard holds regardless of role.
func (s *TherapistService) Delete(ctx context.Context, p domain.Principal, id int64) error {
	if err := policy.CanDeleteTherapist(p, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("therapist_id", id).Int64("deleted_by", p.ID).Msg("therapist account deleted")
	return nil
}
