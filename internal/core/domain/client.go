package domain

import (
	"errors"
	"time"
)

// ClientStatus represents the lifecycle state of a client record.
type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

var ErrClientNotFound = errors.New("client not found")

// Client is a person in a therapist's roster. TherapistID is the ownership
// link: a non-admin principal may only see or mutate clients whose
// TherapistID equals their own id.
type Client struct {
	ID          int64        `json:"id"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	Email       string       `json:"email,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	TherapistID int64        `json:"therapist_id"`
	Status      ClientStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
