package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinicdesk/api/internal/authz"
	"github.com/clinicdesk/api/internal/identity"
	"github.com/clinicdesk/api/internal/models"
	"github.com/clinicdesk/api/internal/repository"
	appErr "github.com/clinicdesk/api/pkg/errors"
	"github.com/clinicdesk/api/pkg/logger"
	"github.com/clinicdesk/api/pkg/pagination"
)

const dateLayout = "2006-01-02"

type PatientService interface {
	Create(ctx context.Context, caller authz.Caller, input *CreatePatientInput) (*models.Patient, error)
	List(ctx context.Context, caller authz.Caller, page, pageSize int) (pagination.Page[models.Patient], error)
	Get(ctx context.Context, caller authz.Caller, id uuid.UUID) (*models.Patient, error)
	Update(ctx context.Context, caller authz.Caller, id uuid.UUID, input *UpdatePatientInput) (*models.Patient, error)
	Deactivate(ctx context.Context, caller authz.Caller, id uuid.UUID) error
	Search(ctx context.Context, caller authz.Caller, q string) ([]models.Patient, error)
}

type CreatePatientInput struct {
	Name      string
	Document  string
	BirthDate string
	Phone     string
	Email     string
	Address   string
}

type UpdatePatientInput struct {
	Name      *string
	Document  *string
	BirthDate *string
	Phone     *string
	Email     *string
	Address   *string
}

type patientService struct {
	patients repository.PatientRepository
}

func NewPatientService(patients repository.PatientRepository) PatientService {
	return &patientService{patients: patients}
}

var _ PatientService = (*patientService)(nil)

// Create validates the identity number before any persistence call and
// stores it in normalized digit-only form.
func (s *patientService) Create(ctx context.Context, caller authz.Caller, input *CreatePatientInput) (*models.Patient, error) {
	if err := authz.Authorize(caller, authz.ActionCreatePatient, authz.Target{}); err != nil {
		return nil, err
	}

	if !identity.Valid(input.Document) {
		return nil, appErr.New(appErr.CodeInvalid, "invalid identity number")
	}
	document := identity.Normalize(input.Document)

	birthDate, err := time.Parse(dateLayout, input.BirthDate)
	if err != nil {
		return nil, appErr.New(appErr.CodeInvalid, "invalid birth date, use YYYY-MM-DD")
	}

	var existing models.Patient
	if err := s.patients.GetByDocument(ctx, document, &existing); err == nil {
		return nil, appErr.New(appErr.CodeAlreadyExists, "identity number already registered")
	} else if !appErr.IsCode(err, appErr.CodeNotFound) {
		return nil, err
	}

	p := &models.Patient{
		Name:      input.Name,
		Document:  document,
		BirthDate: birthDate,
		Phone:     input.Phone,
		Email:     input.Email,
		Address:   input.Address,
		Active:    true,
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return nil, err
	}

	logger.L().Info("patient created", zap.String("patient_id", p.ID.String()), zap.String("caller_id", caller.ID.String()))
	return p, nil
}

func (s *patientService) List(ctx context.Context, caller authz.Caller, page, pageSize int) (pagination.Page[models.Patient], error) {
	var empty pagination.Page[models.Patient]
	if err := authz.Authorize(caller, authz.ActionReadPatient, authz.Target{}); err != nil {
		return empty, err
	}
	items, err := s.patients.ListActive(ctx)
	if err != nil {
		return empty, err
	}
	return pagination.Paginate(items, page, pageSize), nil
}

func (s *patientService) Get(ctx context.Context, caller authz.Caller, id uuid.UUID) (*models.Patient, error) {
	if err := authz.Authorize(caller, authz.ActionReadPatient, authz.Target{}); err != nil {
		return nil, err
	}
	var p models.Patient
	if err := s.patients.GetByID(ctx, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *patientService) Update(ctx context.Context, caller authz.Caller, id uuid.UUID, input *UpdatePatientInput) (*models.Patient, error) {
	if err := authz.Authorize(caller, authz.ActionUpdatePatient, authz.Target{}); err != nil {
		return nil, err
	}

	var p models.Patient
	if err := s.patients.GetByID(ctx, id, &p); err != nil {
		return nil, err
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Document != nil {
		if !identity.Valid(*input.Document) {
			return nil, appErr.New(appErr.CodeInvalid, "invalid identity number")
		}
		document := identity.Normalize(*input.Document)
		if document != p.Document {
			var other models.Patient
			if err := s.patients.GetByDocument(ctx, document, &other); err == nil && other.ID != id {
				return nil, appErr.New(appErr.CodeAlreadyExists, "identity number already registered")
			} else if err != nil && !appErr.IsCode(err, appErr.CodeNotFound) {
				return nil, err
			}
			p.Document = document
		}
	}
	if input.BirthDate != nil {
		birthDate, err := time.Parse(dateLayout, *input.BirthDate)
		if err != nil {
			return nil, appErr.New(appErr.CodeInvalid, "invalid birth date, use YYYY-MM-DD")
		}
		p.BirthDate = birthDate
	}
	if input.Phone != nil {
		p.Phone = *input.Phone
	}
	if input.Email != nil {
		p.Email = *input.Email
	}
	if input.Address != nil {
		p.Address = *input.Address
	}

	if err := s.patients.Update(ctx, &p); err != nil {
		return nil, err
	}

	logger.L().Info("patient updated", zap.String("patient_id", id.String()), zap.String("caller_id", caller.ID.String()))
	return &p, nil
}

func (s *patientService) Deactivate(ctx context.Context, caller authz.Caller, id uuid.UUID) error {
	if err := authz.Authorize(caller, authz.ActionDeactivatePatient, authz.Target{}); err != nil {
		return err
	}
	if err := s.patients.Deactivate(ctx, id); err != nil {
		return err
	}
	logger.L().Info("patient deactivated", zap.String("patient_id", id.String()), zap.String("caller_id", caller.ID.String()))
	return nil
}

func (s *patientService) Search(ctx context.Context, caller authz.Caller, q string) ([]models.Patient, error) {
	if err := authz.Authorize(caller, authz.ActionReadPatient, authz.Target{}); err != nil {
		return nil, err
	}
	if q == "" {
		return nil, appErr.New(appErr.CodeInvalid, "search query is required")
	}
	return s.patients.Search(ctx, q)
}
