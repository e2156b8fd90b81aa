package models

import (
	"time"

	"github.com/google/uuid"

	appErr "github.com/clinicdesk/api/pkg/errors"
)

// Role is the closed set of staff roles.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleClinician    Role = "clinician"
	RoleReceptionist Role = "receptionist"
)

// ParseRole converts a string into a Role, rejecting anything outside the set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleClinician, RoleReceptionist:
		return Role(s), nil
	default:
		return "", appErr.New(appErr.CodeInvalid, "invalid role").WithMeta("role", s)
	}
}

// User represents a staff account. Users are never hard-deleted; Active
// flips to false instead.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Active       bool      `gorm:"not null;default:true;index" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
