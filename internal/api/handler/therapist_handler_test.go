package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/practicewell/records-system/internal/core/domain"
	"github.com/practicewell/records-system/internal/core/ports"
)

type stubTherapistService struct {
	listFn   func(ctx context.Context, p domain.Principal) ([]domain.Therapist, error)
	createFn func(ctx context.Context, p domain.Principal, input ports.CreateTherapistInput) (*domain.Therapist, error)
	updateFn func(ctx context.Context, p domain.Principal, id int64, input ports.UpdateTherapistInput) (*domain.Therapist, error)
	deleteFn func(ctx context.Context, p domain.Principal, id int64) error
}

func (s *stubTherapistService) List(ctx context.Context, p domain.Principal) ([]domain.Therapist, error) {
	return s.listFn(ctx, p)
}

func (s *stubTherapistService) Create(ctx context.Context, p domain.Principal, input ports.CreateTherapistInput) (*domain.Therapist, error) {
	return s.createFn(ctx, p, input)
}

func (s *stubTherapistService) Update(ctx context.Context, p domain.Principal, id int64, input ports.UpdateTherapistInput) (*domain.Therapist, error) {
	return s.updateFn(ctx, p, id, input)
}

func (s *stubTherapistService) Delete(ctx context.Context, p domain.Principal, id int64) error {
	return s.deleteFn(ctx, p, id)
}

var adminPrincipal = domain.Principal{ID: 1, Email: "admin@therapy.com", Role: domain.RoleAdmin, FirstName: "Admin"}

func TestTherapistHandler_List_HidesPasswordHash(t *testing.T) {
	stub := &stubTherapistService{
		listFn: func(ctx context.Context, p domain.Principal) ([]domain.Therapist, error) {
			return []domain.Therapist{
				{ID: 2, FirstName: "Sarah", LastName: "Johnson", Email: "sarah.j@therapy.com", PasswordHash: "bcrypt-hash", Role: domain.RoleTherapist},
			}, nil
		},
	}
	handler := NewTherapistHandler(stub, &memRecorder{})

	c, rec := authedContext(t, http.MethodGet, "/api/admin/therapists", "", adminPrincipal)
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected 1 account, got %d", len(resp))
	}
	for key := range resp[0] {
		if key == "password" || key == "password_hash" {
			t.Fatalf("credential material leaked in response: %s", key)
		}
	}
}

func TestTherapistHandler_Create_Success(t *testing.T) {
	stub := &stubTherapistService{
		createFn: func(ctx context.Context, p domain.Principal, input ports.CreateTherapistInput) (*domain.Therapist, error) {
			if input.Email != "new@therapy.com" || input.Role != domain.RoleTherapist {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Therapist{ID: 5, Email: input.Email, Role: input.Role}, nil
		},
	}
	audit := &memRecorder{}
	handler := NewTherapistHandler(stub, audit)

	c, rec := authedContext(t, http.MethodPost, "/api/admin/therapists",
		`{"first_name":"New","last_name":"Person","email":"new@therapy.com","password":"longenough","role":"THERAPIST"}`,
		adminPrincipal)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditTherapistCreated || audit.events[0].TargetID != 5 {
		t.Fatalf("unexpected audit events: %+v", audit.events)
	}
}

func TestTherapistHandler_Create_RejectsShortPassword(t *testing.T) {
	stub := &stubTherapistService{
		createFn: func(ctx context.Context, p domain.Principal, input ports.CreateTherapistInput) (*domain.Therapist, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTherapistHandler(stub, &memRecorder{})

	c, _ := authedContext(t, http.MethodPost, "/api/admin/therapists",
		`{"first_name":"New","last_name":"Person","email":"new@therapy.com","password":"short"}`,
		adminPrincipal)
	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestTherapistHandler_Create_RejectsUnknownRole(t *testing.T) {
	stub := &stubTherapistService{
		createFn: func(ctx context.Context, p domain.Principal, input ports.CreateTherapistInput) (*domain.Therapist, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewTherapistHandler(stub, &memRecorder{})

	c, _ := authedContext(t, http.MethodPost, "/api/admin/therapists",
		`{"first_name":"New","last_name":"Person","email":"new@therapy.com","password":"longenough","role":"SUPERUSER"}`,
		adminPrincipal)
	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestTherapistHandler_Create_ConflictPropagates(t *testing.T) {
	stub := &stubTherapistService{
		createFn: func(ctx context.Context, p domain.Principal, input ports.CreateTherapistInput) (*domain.Therapist, error) {
			return nil, domain.ErrTherapistExists
		},
	}
	handler := NewTherapistHandler(stub, &memRecorder{})

	c, _ := authedContext(t, http.MethodPost, "/api/admin/therapists",
		`{"first_name":"Dup","last_name":"Person","email":"sarah.j@therapy.com","password":"longenough"}`,
		adminPrincipal)
	if err := handler.Create(c); !errors.Is(err, domain.ErrTherapistExists) {
		t.Fatalf("expected ErrTherapistExists, got %v", err)
	}
}

func TestTherapistHandler_Update_PassesAllowListedFields(t *testing.T) {
	stub := &stubTherapistService{
		updateFn: func(ctx context.Context, p domain.Principal, id int64, input ports.UpdateTherapistInput) (*domain.Therapist, error) {
			if id != 2 {
				t.Fatalf("expected id 2, got %d", id)
			}
			if input.FirstName == nil || *input.FirstName != "Sara" {
				t.Fatalf("first name not forwarded: %+v", input)
			}
			if input.Role == nil || *input.Role != domain.RoleAdmin {
				t.Fatalf("role not forwarded: %+v", input)
			}
			if input.Email != nil || input.Password != nil {
				t.Fatalf("absent fields must stay nil: %+v", input)
			}
			return &domain.Therapist{ID: id, FirstName: "Sara", Role: domain.RoleAdmin}, nil
		},
	}
	audit := &memRecorder{}
	handler := NewTherapistHandler(stub, audit)

	c, rec := authedContext(t, http.MethodPatch, "/api/admin/therapists/2",
		`{"first_name":"Sara","role":"ADMIN"}`, adminPrincipal)
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(audit.events) != 1 || audit.events[0].Action != domain.AuditTherapistUpdated {
		t.Fatalf("unexpected audit events: %+v", audit.events)
	}
}

func TestTherapistHandler_Delete_SelfDeletionPropagates(t *testing.T) {
	stub := &stubTherapistService{
		deleteFn: func(ctx context.Context, p domain.Principal, id int64) error {
			return domain.ErrSelfDeletion
		},
	}
	audit := &memRecorder{}
	handler := NewTherapistHandler(stub, audit)

	c, _ := authedContext(t, http.MethodDelete, "/api/admin/therapists/1", "", adminPrincipal)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.Delete(c); !errors.Is(err, domain.ErrSelfDeletion) {
		t.Fatalf("expected ErrSelfDeletion, got %v", err)
	}
	if len(audit.events) != 0 {
		t.Fatalf("rejected deletion must not be audited")
	}
}
