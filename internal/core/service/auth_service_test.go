package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/practicewell/records-system/internal/auth"
	"github.com/practicewell/records-system/internal/core/domain"
	"github.com/practicewell/records-system/internal/core/ports"
)

type stubTherapistRepo struct {
	byEmail map[string]*domain.Therapist
	nextID  int64
}

func newStubTherapistRepo() *stubTherapistRepo {
	return &stubTherapistRepo{byEmail: make(map[string]*domain.Therapist), nextID: 1}
}

func (r *stubTherapistRepo) seed(t *testing.T, firstName, email, password string, role domain.Role) *domain.Therapist {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	therapist := &domain.Therapist{
		ID:           r.nextID,
		FirstName:    firstName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	r.nextID++
	r.byEmail[email] = therapist
	return therapist
}

func cloneTherapist(t *domain.Therapist) *domain.Therapist {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTherapistRepo) FindByEmail(_ context.Context, email string) (*domain.Therapist, error) {
	if t, ok := r.byEmail[email]; ok {
		return cloneTherapist(t), nil
	}
	return nil, domain.ErrTherapistNotFound
}

func (r *stubTherapistRepo) FindByID(_ context.Context, id int64) (*domain.Therapist, error) {
	for _, t := range r.byEmail {
		if t.ID == id {
			return cloneTherapist(t), nil
		}
	}
	return nil, domain.ErrTherapistNotFound
}

func (r *stubTherapistRepo) List(_ context.Context) ([]domain.Therapist, error) {
	out := make([]domain.Therapist, 0, len(r.byEmail))
	for _, t := range r.byEmail {
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTherapistRepo) Create(_ context.Context, t *domain.Therapist) (*domain.Therapist, error) {
	if _, exists := r.byEmail[t.Email]; exists {
		return nil, domain.ErrTherapistExists
	}
	clone := cloneTherapist(t)
	clone.ID = r.nextID
	r.nextID++
	r.byEmail[clone.Email] = clone
	return cloneTherapist(clone), nil
}

func (r *stubTherapistRepo) Update(_ context.Context, id int64, update ports.TherapistUpdate) (*domain.Therapist, error) {
	for _, t := range r.byEmail {
		if t.ID != id {
			continue
		}
		if update.FirstName != nil {
			t.FirstName = *update.FirstName
		}
		if update.LastName != nil {
			t.LastName = *update.LastName
		}
		if update.Email != nil {
			delete(r.byEmail, t.Email)
			t.Email = *update.Email
			r.byEmail[t.Email] = t
		}
		if update.Role != nil {
			t.Role = *update.Role
		}
		if update.PasswordHash != nil {
			t.PasswordHash = *update.PasswordHash
		}
		return cloneTherapist(t), nil
	}
	return nil, domain.ErrTherapistNotFound
}

func (r *stubTherapistRepo) Delete(_ context.Context, id int64) error {
	for email, t := range r.byEmail {
		if t.ID == id {
			delete(r.byEmail, email)
			return nil
		}
	}
	return domain.ErrTherapistNotFound
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubTherapistRepo()
	seeded := repo.seed(t, "Sarah", "sarah.j@therapy.com", "therapist123", domain.RoleTherapist)
	svc := NewAuthService(repo, "secret", time.Hour)

	token, principal, err := svc.Login(context.Background(), "sarah.j@therapy.com", "therapist123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if principal.ID != seeded.ID || principal.Role != domain.RoleTherapist || principal.FirstName != "Sarah" {
		t.Fatalf("unexpected principal: %+v", principal)
	}

	decoded, err := auth.Verify(token, "secret")
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if decoded != principal {
		t.Fatalf("decoded principal mismatch: got %+v want %+v", decoded, principal)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubTherapistRepo()
	repo.seed(t, "Sarah", "sarah.j@therapy.com", "therapist123", domain.RoleTherapist)
	svc := NewAuthService(repo, "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "sarah.j@therapy.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailIndistinguishable(t *testing.T) {
	repo := newStubTherapistRepo()
	repo.seed(t, "Sarah", "sarah.j@therapy.com", "therapist123", domain.RoleTherapist)
	svc := NewAuthService(repo, "secret", time.Hour)

	_, _, wrongPassword := svc.Login(context.Background(), "sarah.j@therapy.com", "bad")
	_, _, unknownEmail := svc.Login(context.Background(), "ghost@therapy.com", "bad")

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) || !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("both failure modes must collapse to ErrInvalidCredentials, got %v and %v", wrongPassword, unknownEmail)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc := NewAuthService(newStubTherapistRepo(), "secret", time.Hour)

	if _, _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty email, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@b.com", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_TokenSignedWithWrongSecretRejected(t *testing.T) {
	repo := newStubTherapistRepo()
	repo.seed(t, "Sarah", "sarah.j@therapy.com", "therapist123", domain.RoleTherapist)
	svc := NewAuthService(repo, "secret-one", time.Hour)

	token, _, err := svc.Login(context.Background(), "sarah.j@therapy.com", "therapist123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := auth.Verify(token, "secret-two"); !errors.Is(err, auth.ErrTokenSignature) {
		t.Fatalf("expected ErrTokenSignature, got %v", err)
	}
}
