package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/clinicdesk/api/internal/models"
	appErr "github.com/clinicdesk/api/pkg/errors"
)

const testSecret = "unit-test-signing-secret"

func stubUserByEmail(repo *mockUserRepo, u models.User) {
	repo.On("GetByEmail", mock.Anything, u.Email, mock.Anything).
		Run(func(args mock.Arguments) {
			*args.Get(2).(*models.User) = u
		}).
		Return(nil)
}

func TestLoginIssuesTokenWithIdentityClaims(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	u := models.User{ID: uuid.New(), Email: "doc@clinic.local", PasswordHash: hash, Role: models.RoleClinician, Active: true}
	repo := &mockUserRepo{}
	stubUserByEmail(repo, u)

	svc := NewAuthService(repo, []byte(testSecret), time.Hour)
	signed, got, err := svc.Login(context.Background(), "doc@clinic.local", "correct-horse")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)

	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	require.Equal(t, u.ID.String(), claims["sub"])
	require.Equal(t, "clinician", claims["role"])
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	repo := &mockUserRepo{}
	stubUserByEmail(repo, models.User{ID: uuid.New(), Email: "doc@clinic.local", PasswordHash: hash, Role: models.RoleClinician, Active: true})

	svc := NewAuthService(repo, []byte(testSecret), time.Hour)
	_, _, err = svc.Login(context.Background(), "doc@clinic.local", "wrong")
	require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))
}

func TestLoginInactiveAccount(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)

	repo := &mockUserRepo{}
	stubUserByEmail(repo, models.User{ID: uuid.New(), Email: "doc@clinic.local", PasswordHash: hash, Role: models.RoleClinician, Active: false})

	svc := NewAuthService(repo, []byte(testSecret), time.Hour)
	_, _, err = svc.Login(context.Background(), "doc@clinic.local", "correct-horse")
	require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))
}

func TestLoginUnknownEmail(t *testing.T) {
	repo := &mockUserRepo{}
	repo.On("GetByEmail", mock.Anything, "nobody@clinic.local", mock.Anything).
		Return(appErr.New(appErr.CodeNotFound, "user not found"))

	svc := NewAuthService(repo, []byte(testSecret), time.Hour)
	_, _, err := svc.Login(context.Background(), "nobody@clinic.local", "whatever")
	require.True(t, appErr.IsCode(err, appErr.CodeUnauthorized))
}
