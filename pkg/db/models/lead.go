package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/cotizaplus/cotiza-backend/pkg/enums"
)

// Lead is a prospective client tracked through the sales funnel.
type Lead struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyID uuid.UUID        `gorm:"column:company_id;type:uuid;not null;index"`
	Name      string           `gorm:"column:nombre;not null"`
	Business  *string          `gorm:"column:empresa"`
	Email     *string          `gorm:"column:email"`
	Phone     *string          `gorm:"column:telefono"`
	Status    enums.LeadStatus `gorm:"column:estado;type:lead_status;not null;default:'nuevo'"`
	Notes     *string          `gorm:"column:notas"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
