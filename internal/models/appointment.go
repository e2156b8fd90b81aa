package models

import (
	"time"

	"github.com/google/uuid"

	appErr "github.com/clinicdesk/api/pkg/errors"
)

// AppointmentStatus is the closed set of appointment states.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// ParseAppointmentStatus converts a string into an AppointmentStatus,
// rejecting anything outside the set.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch AppointmentStatus(s) {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return AppointmentStatus(s), nil
	default:
		return "", appErr.New(appErr.CodeInvalid, "invalid appointment status").WithMeta("status", s)
	}
}

// Appointment books a patient with a clinician at a point in time.
// Appointments are the only entity that is hard-deleted, and only while
// not completed.
type Appointment struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	ClinicianID uuid.UUID         `gorm:"type:uuid;not null;index" json:"clinician_id"`
	ScheduledAt time.Time         `gorm:"not null;index" json:"scheduled_at"`
	Kind        string            `gorm:"not null" json:"kind"`
	Notes       string            `gorm:"type:text" json:"notes"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;default:scheduled;index" json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	Patient   *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Clinician *User    `gorm:"foreignKey:ClinicianID" json:"clinician,omitempty"`
}
