package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/clinicdesk/api/internal/authz"
	"github.com/clinicdesk/api/internal/models"
	"github.com/clinicdesk/api/internal/repository"
	appErr "github.com/clinicdesk/api/pkg/errors"
	"github.com/clinicdesk/api/pkg/logger"
	"github.com/clinicdesk/api/pkg/pagination"
)

type UserService interface {
	Create(ctx context.Context, caller authz.Caller, input *CreateUserInput) (*models.User, error)
	List(ctx context.Context, caller authz.Caller, filters *UserFilters) (pagination.Page[models.User], error)
	Get(ctx context.Context, caller authz.Caller, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, caller authz.Caller, id uuid.UUID, input *UpdateUserInput) (*models.User, error)
	Deactivate(ctx context.Context, caller authz.Caller, id uuid.UUID) error
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string
	Address  string
}

type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
	Phone    *string
	Address  *string
}

type UserFilters struct {
	Role     string
	Page     int
	PageSize int
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

var _ UserService = (*userService)(nil)

func (s *userService) Create(ctx context.Context, caller authz.Caller, input *CreateUserInput) (*models.User, error) {
	if err := authz.Authorize(caller, authz.ActionCreateUser, authz.Target{}); err != nil {
		return nil, err
	}

	role, err := models.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	var existing models.User
	if err := s.users.GetByEmail(ctx, input.Email, &existing); err == nil {
		return nil, appErr.New(appErr.CodeAlreadyExists, "email already registered")
	} else if !appErr.IsCode(err, appErr.CodeNotFound) {
		return nil, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		Phone:        input.Phone,
		Address:      input.Address,
		Active:       true,
	}
	// The unique index backs up the check above; a losing racer gets the
	// same already_exists from the store.
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	logger.L().Info("user created", zap.String("user_id", u.ID.String()), zap.String("role", string(u.Role)))
	return u, nil
}

func (s *userService) List(ctx context.Context, caller authz.Caller, filters *UserFilters) (pagination.Page[models.User], error) {
	var empty pagination.Page[models.User]
	if err := authz.Authorize(caller, authz.ActionReadUser, authz.Target{}); err != nil {
		return empty, err
	}

	var role *models.Role
	if filters.Role != "" {
		r, err := models.ParseRole(filters.Role)
		if err != nil {
			return empty, err
		}
		role = &r
	}

	items, err := s.users.ListActive(ctx, role)
	if err != nil {
		return empty, err
	}
	return pagination.Paginate(items, filters.Page, filters.PageSize), nil
}

func (s *userService) Get(ctx context.Context, caller authz.Caller, id uuid.UUID) (*models.User, error) {
	if err := authz.Authorize(caller, authz.ActionReadUser, authz.Target{UserID: id}); err != nil {
		return nil, err
	}
	var u models.User
	if err := s.users.GetByID(ctx, id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *userService) Update(ctx context.Context, caller authz.Caller, id uuid.UUID, input *UpdateUserInput) (*models.User, error) {
	if err := authz.Authorize(caller, authz.ActionUpdateUser, authz.Target{UserID: id}); err != nil {
		return nil, err
	}
	// Role is admin-only even on one's own account.
	if input.Role != nil {
		if err := authz.Authorize(caller, authz.ActionChangeUserRole, authz.Target{UserID: id}); err != nil {
			return nil, err
		}
	}

	var u models.User
	if err := s.users.GetByID(ctx, id, &u); err != nil {
		return nil, err
	}

	if input.Name != nil {
		u.Name = *input.Name
	}
	if input.Email != nil && *input.Email != u.Email {
		var other models.User
		if err := s.users.GetByEmail(ctx, *input.Email, &other); err == nil && other.ID != id {
			return nil, appErr.New(appErr.CodeAlreadyExists, "email already registered")
		} else if err != nil && !appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, err
		}
		u.Email = *input.Email
	}
	if input.Password != nil {
		hash, err := HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if input.Role != nil {
		role, err := models.ParseRole(*input.Role)
		if err != nil {
			return nil, err
		}
		u.Role = role
	}
	if input.Phone != nil {
		u.Phone = *input.Phone
	}
	if input.Address != nil {
		u.Address = *input.Address
	}

	if err := s.users.Update(ctx, &u); err != nil {
		return nil, err
	}

	logger.L().Info("user updated", zap.String("user_id", id.String()), zap.String("caller_id", caller.ID.String()))
	return &u, nil
}

func (s *userService) Deactivate(ctx context.Context, caller authz.Caller, id uuid.UUID) error {
	if err := authz.Authorize(caller, authz.ActionDeactivateUser, authz.Target{UserID: id}); err != nil {
		return err
	}
	if err := s.users.Deactivate(ctx, id); err != nil {
		return err
	}
	logger.L().Info("user deactivated", zap.String("user_id", id.String()), zap.String("caller_id", caller.ID.String()))
	return nil
}
