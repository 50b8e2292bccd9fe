package models

import (
	"time"

	"github.com/google/uuid"
)

// QuoteDocument records a generated quote PDF uploaded to object storage.
type QuoteDocument struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID    uuid.UUID `gorm:"column:quote_id;type:uuid;not null;index"`
	CompanyID  uuid.UUID `gorm:"column:company_id;type:uuid;not null;index"`
	ObjectPath string    `gorm:"column:object_path;not null"`
	PublicURL  string    `gorm:"column:public_url;not null"`
	SizeBytes  int64     `gorm:"column:size_bytes;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}
