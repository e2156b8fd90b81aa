package models

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a clinic patient. Document holds the normalized
// 11-digit national identity number; uniqueness is enforced across all
// patients, active or not.
type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Document  string    `gorm:"type:varchar(11);uniqueIndex;not null" json:"document"`
	BirthDate time.Time `gorm:"type:date;not null" json:"birth_date"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	Active    bool      `gorm:"not null;default:true;index" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
