package ports

import (
	"context"

	"github.com/practicewell/records-system/internal/core/domain"
)

// AuthService authenticates credentials and issues bearer tokens.
type AuthService interface {
	// Login verifies email/password and returns a signed token plus the
	// authenticated principal. Unknown email and wrong password both yield
	// domain.ErrInvalidCredentials so callers cannot tell them apart.
	Login(ctx context.Context, email, password string) (string, domain.Principal, error)
}
