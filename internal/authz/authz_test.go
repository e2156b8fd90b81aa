package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/clinicdesk/api/internal/models"
	appErr "github.com/clinicdesk/api/pkg/errors"
)

func TestAuthorizeDecisionTable(t *testing.T) {
	admin := Caller{ID: uuid.New(), Role: models.RoleAdmin}
	clinician := Caller{ID: uuid.New(), Role: models.RoleClinician}
	receptionist := Caller{ID: uuid.New(), Role: models.RoleReceptionist}

	cases := []struct {
		name   string
		caller Caller
		action Action
		target Target
		allow  bool
	}{
		{"admin creates user", admin, ActionCreateUser, Target{}, true},
		{"clinician creates user", clinician, ActionCreateUser, Target{}, false},
		{"receptionist creates user", receptionist, ActionCreateUser, Target{}, false},

		{"user updates own profile", clinician, ActionUpdateUser, Target{UserID: clinician.ID}, true},
		{"user updates other profile", clinician, ActionUpdateUser, Target{UserID: admin.ID}, false},
		{"admin updates any profile", admin, ActionUpdateUser, Target{UserID: clinician.ID}, true},

		{"clinician changes role", clinician, ActionChangeUserRole, Target{UserID: clinician.ID}, false},
		{"admin changes role", admin, ActionChangeUserRole, Target{UserID: clinician.ID}, true},

		{"user deactivates self", receptionist, ActionDeactivateUser, Target{UserID: receptionist.ID}, true},
		{"receptionist deactivates other", receptionist, ActionDeactivateUser, Target{UserID: admin.ID}, false},
		{"admin deactivates user", admin, ActionDeactivateUser, Target{UserID: clinician.ID}, true},

		{"any role creates patient", receptionist, ActionCreatePatient, Target{}, true},
		{"any role updates patient", clinician, ActionUpdatePatient, Target{}, true},
		{"clinician deactivates patient", clinician, ActionDeactivatePatient, Target{}, false},
		{"receptionist deactivates patient", receptionist, ActionDeactivatePatient, Target{}, true},
		{"admin deactivates patient", admin, ActionDeactivatePatient, Target{}, true},

		{"any role creates appointment", receptionist, ActionCreateAppointment, Target{}, true},

		{"clinician updates own appointment", clinician, ActionUpdateAppointment, Target{ClinicianID: clinician.ID}, true},
		{"clinician updates other appointment", clinician, ActionUpdateAppointment, Target{ClinicianID: admin.ID}, false},
		{"admin updates any appointment", admin, ActionUpdateAppointment, Target{ClinicianID: clinician.ID}, true},
		{"receptionist updates appointment", receptionist, ActionUpdateAppointment, Target{ClinicianID: receptionist.ID}, false},

		{"receptionist deletes appointment", receptionist, ActionDeleteAppointment, Target{ClinicianID: clinician.ID}, true},
		{"admin deletes appointment", admin, ActionDeleteAppointment, Target{ClinicianID: clinician.ID}, true},
		{"assigned clinician deletes appointment", clinician, ActionDeleteAppointment, Target{ClinicianID: clinician.ID}, true},
		{"other clinician deletes appointment", clinician, ActionDeleteAppointment, Target{ClinicianID: admin.ID}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.caller, tc.action, tc.target)
			if tc.allow {
				assert.NoError(t, err)
			} else {
				assert.True(t, appErr.IsCode(err, appErr.CodeForbidden), "expected forbidden, got %v", err)
			}
		})
	}
}

func TestAuthorizeUnknownActionDenies(t *testing.T) {
	admin := Caller{ID: uuid.New(), Role: models.RoleAdmin}
	err := Authorize(admin, Action(999), Target{})
	assert.True(t, appErr.IsCode(err, appErr.CodeForbidden))
}
