package services

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/clinicdesk/api/internal/models"
	"github.com/clinicdesk/api/internal/repository"
	"github.com/clinicdesk/api/pkg/logger"
)

func TestMain(m *testing.M) {
	// Services log through the global logger.
	if _, err := logger.Init("error", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

type mockUserRepo struct {
	mock.Mock
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

func (m *mockUserRepo) Create(ctx context.Context, obj *models.User) error {
	return m.Called(ctx, obj).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id any, dest *models.User) error {
	return m.Called(ctx, id, dest).Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, obj *models.User) error {
	return m.Called(ctx, obj).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id any) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	return m.Called(ctx, email, dest).Error(0)
}

func (m *mockUserRepo) ListActive(ctx context.Context, role *models.Role) ([]models.User, error) {
	args := m.Called(ctx, role)
	if v := args.Get(0); v != nil {
		return v.([]models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockPatientRepo struct {
	mock.Mock
}

var _ repository.PatientRepository = (*mockPatientRepo)(nil)

func (m *mockPatientRepo) Create(ctx context.Context, obj *models.Patient) error {
	return m.Called(ctx, obj).Error(0)
}

func (m *mockPatientRepo) GetByID(ctx context.Context, id any, dest *models.Patient) error {
	return m.Called(ctx, id, dest).Error(0)
}

func (m *mockPatientRepo) Update(ctx context.Context, obj *models.Patient) error {
	return m.Called(ctx, obj).Error(0)
}

func (m *mockPatientRepo) Delete(ctx context.Context, id any) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPatientRepo) GetByDocument(ctx context.Context, document string, dest *models.Patient) error {
	return m.Called(ctx, document, dest).Error(0)
}

func (m *mockPatientRepo) ListActive(ctx context.Context) ([]models.Patient, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]models.Patient), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPatientRepo) Search(ctx context.Context, q string) ([]models.Patient, error) {
	args := m.Called(ctx, q)
	if v := args.Get(0); v != nil {
		return v.([]models.Patient), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPatientRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockAppointmentRepo struct {
	mock.Mock
}

var _ repository.AppointmentRepository = (*mockAppointmentRepo)(nil)

func (m *mockAppointmentRepo) Create(ctx context.Context, obj *models.Appointment) error {
	return m.Called(ctx, obj).Error(0)
}

func (m *mockAppointmentRepo) GetByID(ctx context.Context, id any, dest *models.Appointment) error {
	return m.Called(ctx, id, dest).Error(0)
}

func (m *mockAppointmentRepo) Update(ctx context.Context, obj *models.Appointment) error {
	return m.Called(ctx, obj).Error(0)
}

func (m *mockAppointmentRepo) Delete(ctx context.Context, id any) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAppointmentRepo) GetWithRelations(ctx context.Context, id uuid.UUID, dest *models.Appointment) error {
	return m.Called(ctx, id, dest).Error(0)
}

func (m *mockAppointmentRepo) List(ctx context.Context) ([]models.Appointment, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]models.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAppointmentRepo) Search(ctx context.Context, f repository.AppointmentFilter) ([]models.Appointment, error) {
	args := m.Called(ctx, f)
	if v := args.Get(0); v != nil {
		return v.([]models.Appointment), args.Error(1)
	}
	return nil, args.Error(1)
}
