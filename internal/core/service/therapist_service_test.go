package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/practicewell/records-system/internal/core/domain"
	"github.com/practicewell/records-system/internal/core/ports"
)

func TestTherapistService_List_AdminOnly(t *testing.T) {
	repo := newStubTherapistRepo()
	repo.seed(t, "Sarah", "sarah.j@therapy.com", "therapist123", domain.RoleTherapist)
	svc := NewTherapistService(repo, zerolog.Nop())

	if _, err := svc.List(context.Background(), sarahPrincipal); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-admin, got %v", err)
	}

	got, err := svc.List(context.Background(), adminPrincipal)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 therapist, got %d", len(got))
	}
}

func TestTherapistService_Create_HashesPassword(t *testing.T) {
	repo := newStubTherapistRepo()
	svc := NewTherapistService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), adminPrincipal, ports.CreateTherapistInput{
		FirstName: "Emily",
		LastName:  "Williams",
		Email:     "emily.w@therapy.com",
		Password:  "therapist123",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.PasswordHash == "therapist123" {
		t.Fatalf("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("therapist123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if created.Role != domain.RoleTherapist {
		t.Fatalf("role should default to THERAPIST, got %s", created.Role)
	}
}

func TestTherapistService_Create_NonAdminForbidden(t *testing.T) {
	svc := NewTherapistService(newStubTherapistRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), sarahPrincipal, ports.CreateTherapistInput{
		Email:    "new@therapy.com",
		Password: "pw",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTherapistService_Create_RejectsUnknownRole(t *testing.T) {
	svc := NewTherapistService(newStubTherapistRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), adminPrincipal, ports.CreateTherapistInput{
		Email:    "new@therapy.com",
		Password: "pw",
		Role:     "SUPERUSER",
	})
	if !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestTherapistService_Update_RehashesPassword(t *testing.T) {
	repo := newStubTherapistRepo()
	seeded := repo.seed(t, "Sarah", "sarah.j@therapy.com", "therapist123", domain.RoleTherapist)
	svc := NewTherapistService(repo, zerolog.Nop())

	newPassword := "rotated456"
	updated, err := svc.Update(context.Background(), adminPrincipal, seeded.ID, ports.UpdateTherapistInput{
		Password: &newPassword,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte(newPassword)); err != nil {
		t.Fatalf("rotated hash does not match new password: %v", err)
	}
}

func TestTherapistService_Update_NonAdminForbidden(t *testing.T) {
	repo := newStubTherapistRepo()
	seeded := repo.seed(t, "Sarah", "sarah.j@therapy.com", "therapist123", domain.RoleTherapist)
	svc := NewTherapistService(repo, zerolog.Nop())

	name := "S"
	if _, err := svc.Update(context.Background(), sarahPrincipal, seeded.ID, ports.UpdateTherapistInput{FirstName: &name}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTherapistService_Delete_SelfDeletionGuard(t *testing.T) {
	repo := newStubTherapistRepo()
	admin := repo.seed(t, "Admin", "admin@therapy.com", "admin123", domain.RoleAdmin)
	other := repo.seed(t, "Sarah", "sarah.j@therapy.com", "therapist123", domain.RoleTherapist)
	svc := NewTherapistService(repo, zerolog.Nop())

	self := domain.Principal{ID: admin.ID, Email: admin.Email, Role: domain.RoleAdmin}

	if err := svc.Delete(context.Background(), self, admin.ID); !errors.Is(err, domain.ErrSelfDeletion) {
		t.Fatalf("expected ErrSelfDeletion, got %v", err)
	}
	if err := svc.Delete(context.Background(), self, other.ID); err != nil {
		t.Fatalf("deleting another account: %v", err)
	}
}

func TestTherapistService_Delete_NonAdminForbidden(t *testing.T) {
	repo := newStubTherapistRepo()
	other := repo.seed(t, "Emily", "emily.w@therapy.com", "therapist123", domain.RoleTherapist)
	svc := NewTherapistService(repo, zerolog.Nop())

	if err := svc.Delete(context.Background(), sarahPrincipal, other.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
