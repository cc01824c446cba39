package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/practicewell/records-system/internal/auth"
	"github.com/practicewell/records-system/internal/core/domain"
	"github.com/practicewell/records-system/internal/core/ports"
)

// AuthService implements login against the therapist credential store.
type AuthService struct {
	repo      ports.TherapistRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.TherapistRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login verifies the credentials and issues a signed token. Every failure
// path returns domain.ErrInvalidCredentials so the response cannot be used
// to probe which emails exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, domain.Principal, error) {
	if email == "" || password == "" {
		return "", domain.Principal{}, domain.ErrInvalidCredentials
	}

	therapist, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrTherapistNotFound) {
			return "", domain.Principal{}, domain.ErrInvalidCredentials
		}
		return "", domain.Principal{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(therapist.PasswordHash), []byte(password)) != nil {
		return "", domain.Principal{}, domain.ErrInvalidCredentials
	}

	principal := domain.Principal{
		ID:        therapist.ID,
		Email:     therapist.Email,
		Role:      therapist.Role,
		FirstName: therapist.FirstName,
	}

	token, err := auth.Issue(principal, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", domain.Principal{}, err
	}

	return token, principal, nil
}
