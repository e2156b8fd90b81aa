package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinicdesk/api/internal/models"
	appErr "github.com/clinicdesk/api/pkg/errors"
)

type UserRepository interface {
	BaseRepository[models.User]
	GetByEmail(ctx context.Context, email string, dest *models.User) error
	ListActive(ctx context.Context, role *models.Role) ([]models.User, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	BaseRepository[models.User]
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository[models.User](db), db: db}
}

// GetByEmail looks up a user regardless of active flag; callers that need
// only active accounts check Active themselves.
func (r *userRepository) GetByEmail(ctx context.Context, email string, dest *models.User) error {
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErr.New(appErr.CodeNotFound, "user not found")
		}
		return appErr.Wrap(err, appErr.CodeInternal, "get user by email failed")
	}
	return nil
}

// ListActive returns active users in creation order, optionally limited to
// one role. The ordering is what list pagination is applied over.
func (r *userRepository) ListActive(ctx context.Context, role *models.Role) ([]models.User, error) {
	q := r.db.WithContext(ctx).Where("active = true")
	if role != nil {
		q = q.Where("role = ?", *role)
	}
	var out []models.User
	if err := q.Order("created_at ASC, id ASC").Find(&out).Error; err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "list users failed")
	}
	return out, nil
}

// Deactivate soft-deletes: active flips to false and never back.
func (r *userRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("active", false)
	if res.Error != nil {
		return appErr.Wrap(res.Error, appErr.CodeInternal, "deactivate user failed")
	}
	if res.RowsAffected == 0 {
		return appErr.New(appErr.CodeNotFound, "user not found")
	}
	return nil
}
