package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinicdesk/api/internal/models"
	appErr "github.com/clinicdesk/api/pkg/errors"
)

type PatientRepository interface {
	BaseRepository[models.Patient]
	GetByDocument(ctx context.Context, document string, dest *models.Patient) error
	ListActive(ctx context.Context) ([]models.Patient, error)
	Search(ctx context.Context, q string) ([]models.Patient, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type patientRepository struct {
	BaseRepository[models.Patient]
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) PatientRepository {
	return &patientRepository{BaseRepository: NewBaseRepository[models.Patient](db), db: db}
}

// GetByDocument matches across all patients, active or not; document
// uniqueness holds over the whole table.
func (r *patientRepository) GetByDocument(ctx context.Context, document string, dest *models.Patient) error {
	if err := r.db.WithContext(ctx).Where("document = ?", document).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "patient not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get patient by document failed")
	}
	return nil
}

func (r *patientRepository) ListActive(ctx context.Context) ([]models.Patient, error) {
	var out []models.Patient
	if err := r.db.WithContext(ctx).Where("active = true").Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list patients failed")
	}
	return out, nil
}

// Search matches q as a case-sensitive substring of name or document over
// active patients only.
func (r *patientRepository) Search(ctx context.Context, q string) ([]models.Patient, error) {
	like := "%" + q + "%"
	var out []models.Patient
	err := r.db.WithContext(ctx).
		Where("active = true").
		Where("name LIKE ? OR document LIKE ?", like, like).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "search patients failed")
	}
	return out, nil
}

func (r *patientRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&models.Patient{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "deactivate patient failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "patient not found")
	}
	return nil
}
