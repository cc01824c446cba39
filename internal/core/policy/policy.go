// Package policy is the single decision point for role and ownership based
// access control. Services ask it before touching the store; it never
// performs I/O itself.
package policy

import (
	"github.com/practicewell/records-system/internal/core/domain"
)

// Operation identifies an action being authorized.
type Operation string

const (
	OpListClients  Operation = "clients.list"
	OpCreateClient Operation = "clients.create"
	OpUpdateClient Operation = "clients.update"
	OpDeleteClient Operation = "clients.delete"

	OpListTherapists  Operation = "therapists.list"
	OpCreateTherapist Operation = "therapists.create"
	OpUpdateTherapist Operation = "therapists.update"
	OpDeleteTherapist Operation = "therapists.delete"
)

// CanAccessClient reports whether p may perform op on a client record owned
// by ownerID. Admins are exempt from the ownership check; therapists only
// touch their own rows.
func CanAccessClient(p domain.Principal, op Operation, ownerID int64) error {
	switch p.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleTherapist:
		if ownerID != p.ID {
			return domain.ErrForbidden
		}
		return nil
	default:
		return domain.ErrForbidden
	}
}

// CanManageTherapists reports whether p may perform account-management
// operations. Only admins qualify.
func CanManageTherapists(p domain.Principal) error {
	switch p.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleTherapist:
		return domain.ErrForbidden
	default:
		return domain.ErrForbidden
	}
}

// CanDeleteTherapist layers the self-deletion guard on top of the admin
// check: no principal may delete the account matching its own id, admins
// included.
func CanDeleteTherapist(p domain.Principal, targetID int64) error {
	if err := CanManageTherapists(p); err != nil {
		return err
	}
	if targetID == p.ID {
		return domain.ErrSelfDeletion
	}
	return nil
}

// ClientScope returns the owner id a client listing must be filtered by.
// Zero means unrestricted (admin view).
func ClientScope(p domain.Principal) int64 {
	if p.IsAdmin() {
		return 0
	}
	return p.ID
}
