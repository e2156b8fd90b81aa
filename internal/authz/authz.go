// Package authz is the pure authorization gate evaluated before every
// mutation. It has no side effects and consults nothing but its inputs;
// unlisted (caller, action) combinations deny.
package authz

import (
	"github.com/google/uuid"

	"github.com/clinicdesk/api/internal/models"
	appErr "github.com/clinicdesk/api/pkg/errors"
)

// Caller is the verified identity resolved from an access token.
type Caller struct {
	ID   uuid.UUID
	Role models.Role
}

// Action enumerates every gated operation.
type Action int

const (
	ActionCreateUser Action = iota
	ActionReadUser
	ActionUpdateUser
	ActionChangeUserRole
	ActionDeactivateUser
	ActionCreatePatient
	ActionReadPatient
	ActionUpdatePatient
	ActionDeactivatePatient
	ActionCreateAppointment
	ActionReadAppointment
	ActionUpdateAppointment
	ActionDeleteAppointment
)

// Target describes the record an action is aimed at. Only the fields
// relevant to the action need to be set.
type Target struct {
	// UserID is the target account for user actions.
	UserID uuid.UUID
	// ClinicianID is the assigned clinician for appointment actions.
	ClinicianID uuid.UUID
}

// Authorize decides whether the caller may perform action on target.
// It returns nil to allow and a forbidden error to deny.
func Authorize(caller Caller, action Action, target Target) error {
	if allowed(caller, action, target) {
		return nil
	}
	return appErr.New(appErr.CodeForbidden, "operation not permitted for caller").
		WithMeta("role", string(caller.Role))
}

func allowed(caller Caller, action Action, target Target) bool {
	switch action {
	case ActionCreateUser:
		return caller.Role == models.RoleAdmin
	case ActionReadUser:
		return true
	case ActionUpdateUser:
		return caller.Role == models.RoleAdmin || caller.ID == target.UserID
	case ActionChangeUserRole:
		return caller.Role == models.RoleAdmin
	case ActionDeactivateUser:
		return caller.Role == models.RoleAdmin || caller.ID == target.UserID
	case ActionCreatePatient, ActionReadPatient, ActionUpdatePatient:
		return true
	case ActionDeactivatePatient:
		return caller.Role == models.RoleAdmin || caller.Role == models.RoleReceptionist
	case ActionCreateAppointment, ActionReadAppointment:
		return true
	case ActionUpdateAppointment:
		if caller.Role == models.RoleAdmin {
			return true
		}
		return caller.Role == models.RoleClinician && caller.ID == target.ClinicianID
	case ActionDeleteAppointment:
		if caller.Role == models.RoleAdmin || caller.Role == models.RoleReceptionist {
			return true
		}
		return caller.Role == models.RoleClinician && caller.ID == target.ClinicianID
	default:
		return false
	}
}
