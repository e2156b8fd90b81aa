package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clinicdesk/api/internal/authz"
	"github.com/clinicdesk/api/internal/lifecycle"
	"github.com/clinicdesk/api/internal/models"
	"github.com/clinicdesk/api/internal/repository"
	appErr "github.com/clinicdesk/api/pkg/errors"
	"github.com/clinicdesk/api/pkg/logger"
	"github.com/clinicdesk/api/pkg/pagination"
)

const scheduleLayout = "2006-01-02 15:04"

type AppointmentService interface {
	Create(ctx context.Context, caller authz.Caller, input *CreateAppointmentInput) (*models.Appointment, error)
	List(ctx context.Context, caller authz.Caller, page, pageSize int) (pagination.Page[models.Appointment], error)
	Get(ctx context.Context, caller authz.Caller, id uuid.UUID) (*models.Appointment, error)
	Update(ctx context.Context, caller authz.Caller, id uuid.UUID, input *UpdateAppointmentInput) (*models.Appointment, error)
	Delete(ctx context.Context, caller authz.Caller, id uuid.UUID) error
	Search(ctx context.Context, caller authz.Caller, input *SearchAppointmentsInput) ([]models.Appointment, error)
}

type CreateAppointmentInput struct {
	PatientID   uuid.UUID
	ClinicianID uuid.UUID
	ScheduledAt string
	Kind        string
	Notes       string
}

type UpdateAppointmentInput struct {
	PatientID   *uuid.UUID
	ClinicianID *uuid.UUID
	ScheduledAt *string
	Kind        *string
	Notes       *string
	Status      *string
}

// SearchAppointmentsInput carries raw filter values as received; absent
// filters are empty strings and are omitted from the conjunction.
type SearchAppointmentsInput struct {
	From        string
	To          string
	ClinicianID string
	Status      string
}

type appointmentService struct {
	db           *gorm.DB
	appointments repository.AppointmentRepository
	patients     repository.PatientRepository
	users        repository.UserRepository
	guard        lifecycle.Guard
}

func NewAppointmentService(
	db *gorm.DB,
	appointments repository.AppointmentRepository,
	patients repository.PatientRepository,
	users repository.UserRepository,
	guard lifecycle.Guard,
) AppointmentService {
	return &appointmentService{
		db:           db,
		appointments: appointments,
		patients:     patients,
		users:        users,
		guard:        guard,
	}
}

var _ AppointmentService = (*appointmentService)(nil)

// checkClinician resolves the referenced user and requires the clinician
// role; anything else is reported as the clinician not being found.
func checkClinician(ctx context.Context, users repository.UserRepository, id uuid.UUID) error {
	var u models.User
	if err := users.GetByID(ctx, id, &u); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return appErr.New(appErr.CodeNotFound, "clinician not found")
		}
		return err
	}
	if u.Role != models.RoleClinician || !u.Active {
		return appErr.New(appErr.CodeNotFound, "clinician not found")
	}
	return nil
}

func checkPatient(ctx context.Context, patients repository.PatientRepository, id uuid.UUID) error {
	var p models.Patient
	if err := patients.GetByID(ctx, id, &p); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return appErr.New(appErr.CodeNotFound, "patient not found")
		}
		return err
	}
	return nil
}

func (s *appointmentService) Create(ctx context.Context, caller authz.Caller, input *CreateAppointmentInput) (*models.Appointment, error) {
	if err := authz.Authorize(caller, authz.ActionCreateAppointment, authz.Target{}); err != nil {
		return nil, err
	}

	scheduledAt, err := time.Parse(scheduleLayout, input.ScheduledAt)
	if err != nil {
		return nil, appErr.New(appErr.CodeInvalid, "invalid schedule time, use YYYY-MM-DD HH:MM")
	}

	if err := checkPatient(ctx, s.patients, input.PatientID); err != nil {
		return nil, err
	}
	if err := checkClinician(ctx, s.users, input.ClinicianID); err != nil {
		return nil, err
	}

	a := &models.Appointment{
		PatientID:   input.PatientID,
		ClinicianID: input.ClinicianID,
		ScheduledAt: scheduledAt,
		Kind:        input.Kind,
		Notes:       input.Notes,
		Status:      models.StatusScheduled,
	}

	// Re-run the referential checks and insert inside one transaction so
	// the whole mutation commits or nothing does.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkPatient(ctx, repository.NewPatientRepository(tx), input.PatientID); err != nil {
			return err
		}
		if err := checkClinician(ctx, repository.NewUserRepository(tx), input.ClinicianID); err != nil {
			return err
		}
		return repository.NewAppointmentRepository(tx).Create(ctx, a)
	})
	if err != nil {
		return nil, err
	}

	logger.L().Info("appointment created",
		zap.String("appointment_id", a.ID.String()),
		zap.String("patient_id", a.PatientID.String()),
		zap.String("clinician_id", a.ClinicianID.String()))
	return a, nil
}

func (s *appointmentService) List(ctx context.Context, caller authz.Caller, page, pageSize int) (pagination.Page[models.Appointment], error) {
	var empty pagination.Page[models.Appointment]
	if err := authz.Authorize(caller, authz.ActionReadAppointment, authz.Target{}); err != nil {
		return empty, err
	}
	items, err := s.appointments.List(ctx)
	if err != nil {
		return empty, err
	}
	return pagination.Paginate(items, page, pageSize), nil
}

func (s *appointmentService) Get(ctx context.Context, caller authz.Caller, id uuid.UUID) (*models.Appointment, error) {
	if err := authz.Authorize(caller, authz.ActionReadAppointment, authz.Target{}); err != nil {
		return nil, err
	}
	var a models.Appointment
	if err := s.appointments.GetWithRelations(ctx, id, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *appointmentService) Update(ctx context.Context, caller authz.Caller, id uuid.UUID, input *UpdateAppointmentInput) (*models.Appointment, error) {
	var a models.Appointment
	if err := s.appointments.GetByID(ctx, id, &a); err != nil {
		return nil, err
	}

	// Gate against the currently assigned clinician, not one the caller
	// may be trying to reassign to.
	if err := authz.Authorize(caller, authz.ActionUpdateAppointment, authz.Target{ClinicianID: a.ClinicianID}); err != nil {
		return nil, err
	}

	if input.PatientID != nil && *input.PatientID != a.PatientID {
		if err := checkPatient(ctx, s.patients, *input.PatientID); err != nil {
			return nil, err
		}
		a.PatientID = *input.PatientID
	}
	if input.ClinicianID != nil && *input.ClinicianID != a.ClinicianID {
		if err := checkClinician(ctx, s.users, *input.ClinicianID); err != nil {
			return nil, err
		}
		a.ClinicianID = *input.ClinicianID
	}
	if input.ScheduledAt != nil {
		scheduledAt, err := time.Parse(scheduleLayout, *input.ScheduledAt)
		if err != nil {
			return nil, appErr.New(appErr.CodeInvalid, "invalid schedule time, use YYYY-MM-DD HH:MM")
		}
		a.ScheduledAt = scheduledAt
	}
	if input.Kind != nil {
		a.Kind = *input.Kind
	}
	if input.Notes != nil {
		a.Notes = *input.Notes
	}
	if input.Status != nil {
		status, err := models.ParseAppointmentStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		if err := s.guard.CanSetStatus(a.Status, status); err != nil {
			return nil, err
		}
		a.Status = status
	}

	if err := s.appointments.Update(ctx, &a); err != nil {
		return nil, err
	}

	logger.L().Info("appointment updated", zap.String("appointment_id", id.String()), zap.String("caller_id", caller.ID.String()))
	return &a, nil
}

func (s *appointmentService) Delete(ctx context.Context, caller authz.Caller, id uuid.UUID) error {
	var a models.Appointment
	if err := s.appointments.GetByID(ctx, id, &a); err != nil {
		return err
	}
	if err := authz.Authorize(caller, authz.ActionDeleteAppointment, authz.Target{ClinicianID: a.ClinicianID}); err != nil {
		return err
	}
	if err := s.guard.CanDelete(a.Status); err != nil {
		return err
	}
	if err := s.appointments.Delete(ctx, id); err != nil {
		return err
	}
	logger.L().Info("appointment deleted", zap.String("appointment_id", id.String()), zap.String("caller_id", caller.ID.String()))
	return nil
}

func (s *appointmentService) Search(ctx context.Context, caller authz.Caller, input *SearchAppointmentsInput) ([]models.Appointment, error) {
	if err := authz.Authorize(caller, authz.ActionReadAppointment, authz.Target{}); err != nil {
		return nil, err
	}

	var filter repository.AppointmentFilter
	if input.From != "" {
		d, err := time.Parse(dateLayout, input.From)
		if err != nil {
			return nil, appErr.New(appErr.CodeInvalid, "invalid from date, use YYYY-MM-DD")
		}
		filter.From = &d
	}
	if input.To != "" {
		d, err := time.Parse(dateLayout, input.To)
		if err != nil {
			return nil, appErr.New(appErr.CodeInvalid, "invalid to date, use YYYY-MM-DD")
		}
		// extend to the end of the day so the bound is inclusive
		end := d.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		filter.To = &end
	}
	if input.ClinicianID != "" {
		cid, err := uuid.Parse(input.ClinicianID)
		if err != nil {
			return nil, appErr.New(appErr.CodeInvalid, "invalid clinician id")
		}
		filter.ClinicianID = &cid
	}
	if input.Status != "" {
		status, err := models.ParseAppointmentStatus(input.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &status
	}

	return s.appointments.Search(ctx, filter)
}
