// Package lifecycle holds the appointment state machine and soft-delete
// semantics for users and patients.
package lifecycle

import (
	"github.com/clinicdesk/api/internal/models"
	appErr "github.com/clinicdesk/api/pkg/errors"
)

// Guard checks appointment status transitions. With Strict disabled (the
// default) any status may be set directly to any enum value; deletion of a
// completed appointment is refused either way.
type Guard struct {
	Strict bool
}

// CanSetStatus validates a status change from -> to.
func (g Guard) CanSetStatus(from, to models.AppointmentStatus) error {
	if !g.Strict || from == to {
		return nil
	}
	if from == models.StatusScheduled {
		return nil
	}
	return appErr.New(appErr.CodeInvalidTransition, "appointment status cannot leave a terminal state").
		WithMeta("from", string(from)).
		WithMeta("to", string(to))
}

// CanDelete reports whether an appointment in the given status may be
// hard-deleted. Completed appointments never are, regardless of caller.
func (g Guard) CanDelete(status models.AppointmentStatus) error {
	if status == models.StatusCompleted {
		return appErr.New(appErr.CodeInvalidTransition, "completed appointments cannot be deleted")
	}
	return nil
}
