package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinicdesk/api/internal/models"
	appErr "github.com/clinicdesk/api/pkg/errors"
)

// AppointmentFilter is a conjunction of optional predicates; nil fields
// are omitted, never treated as match-nothing.
type AppointmentFilter struct {
	From        *time.Time
	To          *time.Time
	ClinicianID *uuid.UUID
	Status      *models.AppointmentStatus
}

type AppointmentRepository interface {
	BaseRepository[models.Appointment]
	GetWithRelations(ctx context.Context, id uuid.UUID, dest *models.Appointment) error
	List(ctx context.Context) ([]models.Appointment, error)
	Search(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error)
}

type appointmentRepository struct {
	BaseRepository[models.Appointment]
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{BaseRepository: NewBaseRepository[models.Appointment](db), db: db}
}

func (r *appointmentRepository) GetWithRelations(ctx context.Context, id uuid.UUID, dest *models.Appointment) error {
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Clinician").
		First(dest, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "appointment not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get appointment failed")
	}
	return nil
}

// List returns all appointments, any status, in creation order.
func (r *appointmentRepository) List(ctx context.Context) ([]models.Appointment, error) {
	var out []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Clinician").
		Order("created_at ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list appointments failed")
	}
	return out, nil
}

func (r *appointmentRepository) Search(ctx context.Context, f AppointmentFilter) ([]models.Appointment, error) {
	q := r.db.WithContext(ctx).Preload("Patient").Preload("Clinician")
	if f.From != nil {
		q = q.Where("scheduled_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("scheduled_at <= ?", *f.To)
	}
	if f.ClinicianID != nil {
		q = q.Where("clinician_id = ?", *f.ClinicianID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var out []models.Appointment
	if err := q.Order("scheduled_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "search appointments failed")
	}
	return out, nil
}
