package services

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicdesk/api/internal/models"
	"github.com/clinicdesk/api/internal/repository"
	appErr "github.com/clinicdesk/api/pkg/errors"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
}

type authService struct {
	users      repository.UserRepository
	hmacSecret []byte
	tokenTTL   time.Duration
}

func NewAuthService(users repository.UserRepository, secret []byte, ttl time.Duration) AuthService {
	return &authService{users: users, hmacSecret: secret, tokenTTL: ttl}
}

var _ AuthService = (*authService)(nil)

// Login verifies credentials against active accounts and issues a signed
// token carrying the caller identity (id and role).
func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	var u models.User
	if err := s.users.GetByEmail(ctx, email, &u); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return "", nil, errInvalidCredentials()
		}
		return "", nil, err
	}
	if !u.Active {
		return "", nil, errInvalidCredentials()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return "", nil, errInvalidCredentials()
		}
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "password comparison failed")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.ID.String(),
		"role": string(u.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return "", nil, appErr.Wrap(err, appErr.CodeInternal, "sign token failed")
	}
	return signed, &u, nil
}

func errInvalidCredentials() error {
	return appErr.New(appErr.CodeUnauthorized, "invalid credentials")
}

// HashPassword derives the stored bcrypt hash for a plaintext password.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "hash password failed")
	}
	return string(b), nil
}
