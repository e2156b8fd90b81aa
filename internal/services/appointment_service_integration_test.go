package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/clinicdesk/api/internal/lifecycle"
	"github.com/clinicdesk/api/internal/models"
	"github.com/clinicdesk/api/internal/repository"
	appErr "github.com/clinicdesk/api/pkg/errors"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("clinic_test"),
		tcpostgres.WithUsername("clinic"),
		tcpostgres.WithPassword("clinic"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Patient{}, &models.Appointment{}))
	return db
}

func countAppointments(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Appointment{}).Count(&n).Error)
	return n
}

func TestCreateAppointmentCommits(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db := openServiceTestDB(t)
	ctx := context.Background()

	users := repository.NewUserRepository(db)
	patients := repository.NewPatientRepository(db)

	clinician := &models.User{Name: "Dr. Reis", Email: "reis@clinic.test", PasswordHash: "x", Role: models.RoleClinician, Active: true}
	require.NoError(t, users.Create(ctx, clinician))
	patient := &models.Patient{Name: "Ana Lima", Document: "52998224725", BirthDate: time.Date(1985, 1, 2, 0, 0, 0, 0, time.UTC), Active: true}
	require.NoError(t, patients.Create(ctx, patient))

	svc := NewAppointmentService(db, repository.NewAppointmentRepository(db), patients, users, lifecycle.Guard{})

	a, err := svc.Create(ctx, receptionistCaller(), &CreateAppointmentInput{
		PatientID:   patient.ID,
		ClinicianID: clinician.ID,
		ScheduledAt: "2026-10-01 14:30",
		Kind:        "checkup",
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusScheduled, a.Status)

	var stored models.Appointment
	require.NoError(t, db.First(&stored, "id = ?", a.ID).Error)
	require.Equal(t, clinician.ID, stored.ClinicianID)
	require.Equal(t, int64(1), countAppointments(t, db))
}

// A clinician that disappears between the service's pre-check and the
// commit must fail the in-transaction re-check and leave no row behind.
func TestCreateAppointmentRollsBackOnStaleClinician(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	db := openServiceTestDB(t)
	ctx := context.Background()

	patients := repository.NewPatientRepository(db)
	patient := &models.Patient{Name: "Ana Lima", Document: "52998224725", BirthDate: time.Date(1985, 1, 2, 0, 0, 0, 0, time.UTC), Active: true}
	require.NoError(t, patients.Create(ctx, patient))

	// The stale view: this repo still sees an active clinician who no
	// longer exists in the database.
	clinicianID := uuid.New()
	staleUsers := &mockUserRepo{}
	staleUsers.On("GetByID", mock.Anything, clinicianID, mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(2).(*models.User) = models.User{ID: clinicianID, Role: models.RoleClinician, Active: true}
		}).
		Return(nil)

	svc := NewAppointmentService(db, repository.NewAppointmentRepository(db), patients, staleUsers, lifecycle.Guard{})

	_, err := svc.Create(ctx, receptionistCaller(), &CreateAppointmentInput{
		PatientID:   patient.ID,
		ClinicianID: clinicianID,
		ScheduledAt: "2026-10-01 14:30",
		Kind:        "checkup",
	})
	require.True(t, appErr.IsCode(err, appErr.CodeNotFound))
	require.Contains(t, err.Error(), "clinician not found")
	require.Equal(t, int64(0), countAppointments(t, db))
}
