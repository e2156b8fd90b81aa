package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/api/internal/authz"
	"github.com/clinicdesk/api/internal/models"
	appErr "github.com/clinicdesk/api/pkg/errors"
)

func receptionistCaller() authz.Caller {
	return authz.Caller{ID: uuid.New(), Role: models.RoleReceptionist}
}

func TestCreatePatientInvalidDocumentSkipsStore(t *testing.T) {
	repo := &mockPatientRepo{}
	svc := NewPatientService(repo)

	_, err := svc.Create(context.Background(), receptionistCaller(), &CreatePatientInput{
		Name:      "Ana Souza",
		Document:  "11144477734", // bad check digit
		BirthDate: "1990-04-12",
	})

	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "GetByDocument", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePatientNormalizesDocument(t *testing.T) {
	repo := &mockPatientRepo{}
	repo.On("GetByDocument", mock.Anything, "11144477735", mock.Anything).
		Return(appErr.New(appErr.CodeNotFound, "patient not found"))
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Patient) bool {
		return p.Document == "11144477735" && p.Active
	})).Return(nil)

	svc := NewPatientService(repo)
	p, err := svc.Create(context.Background(), receptionistCaller(), &CreatePatientInput{
		Name:      "Ana Souza",
		Document:  "111.444.777-35",
		BirthDate: "1990-04-12",
	})

	require.NoError(t, err)
	require.Equal(t, "11144477735", p.Document)
	repo.AssertExpectations(t)
}

func TestCreatePatientDuplicateDocument(t *testing.T) {
	repo := &mockPatientRepo{}
	repo.On("GetByDocument", mock.Anything, "11144477735", mock.Anything).Return(nil)

	svc := NewPatientService(repo)
	_, err := svc.Create(context.Background(), receptionistCaller(), &CreatePatientInput{
		Name:      "Ana Souza",
		Document:  "11144477735",
		BirthDate: "1990-04-12",
	})

	require.True(t, appErr.IsCode(err, appErr.CodeAlreadyExists))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreatePatientBadBirthDate(t *testing.T) {
	repo := &mockPatientRepo{}
	svc := NewPatientService(repo)

	_, err := svc.Create(context.Background(), receptionistCaller(), &CreatePatientInput{
		Name:      "Ana Souza",
		Document:  "11144477735",
		BirthDate: "12/04/1990",
	})

	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDeactivatePatientRoleGate(t *testing.T) {
	repo := &mockPatientRepo{}
	svc := NewPatientService(repo)
	id := uuid.New()

	clinician := authz.Caller{ID: uuid.New(), Role: models.RoleClinician}
	err := svc.Deactivate(context.Background(), clinician, id)
	require.True(t, appErr.IsCode(err, appErr.CodeForbidden))
	repo.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)

	repo.On("Deactivate", mock.Anything, id).Return(nil)
	require.NoError(t, svc.Deactivate(context.Background(), receptionistCaller(), id))
	repo.AssertExpectations(t)
}

func TestSearchPatientsRequiresQuery(t *testing.T) {
	repo := &mockPatientRepo{}
	svc := NewPatientService(repo)

	_, err := svc.Search(context.Background(), receptionistCaller(), "")
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
	repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestListPatientsPaginates(t *testing.T) {
	repo := &mockPatientRepo{}
	items := make([]models.Patient, 25)
	for i := range items {
		items[i] = models.Patient{ID: uuid.New(), Active: true}
	}
	repo.On("ListActive", mock.Anything).Return(items, nil)

	svc := NewPatientService(repo)
	page, err := svc.List(context.Background(), receptionistCaller(), 3, 10)

	require.NoError(t, err)
	require.Len(t, page.Items, 5)
	require.Equal(t, 3, page.TotalPages)
	require.Equal(t, int64(25), page.TotalItems)
	require.False(t, page.HasNext)
	require.True(t, page.HasPrev)
}
