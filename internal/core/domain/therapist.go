package domain

import (
	"errors"
	"time"
)

// Role is the closed set of account roles. Policy evaluation switches
// exhaustively on this type; anything outside the two constants is invalid.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleTherapist Role = "THERAPIST"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTherapist
}

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrTherapistNotFound = errors.New("therapist not found")
var ErrTherapistExists = errors.New("therapist already exists")
var ErrSelfDeletion = errors.New("cannot delete own account")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidRole = errors.New("invalid role")

// Therapist is an account holder: either a practicing therapist or an
// administrator. The password hash never leaves the server.
type Therapist struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the authenticated identity carried by a verified token.
// It is immutable for the lifetime of a request.
type Principal struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	FirstName string `json:"first_name"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
