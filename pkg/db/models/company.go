package models

import (
	"time"

	"github.com/google/uuid"
)

// Company represents the canonical tenant model.
type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	TaxID     *string   `gorm:"column:tax_id"`
	Email     *string   `gorm:"column:email"`
	Phone     *string   `gorm:"column:phone"`
	LogoURL   *string   `gorm:"column:logo_url"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
