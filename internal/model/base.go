package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BaseModel handles ID (UUID) and the shared audit/soft-delete columns.
// A record with a null DeletedAt is active; voiding sets the timestamp
// instead of removing the row.
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}

// Hook Before Create to generate the UUID automatically
func (base *BaseModel) BeforeCreate(tx *gorm.DB) (err error) {
	base.ID = uuid.New()
	return
}

// IsActive reports whether the record has not been voided.
func (base *BaseModel) IsActive() bool {
	return !base.DeletedAt.Valid
}

// VoidedAt returns the void timestamp, or nil for active records.
func (base *BaseModel) VoidedAt() *time.Time {
	if base.DeletedAt.Valid {
		t := base.DeletedAt.Time
		return &t
	}
	return nil
}
