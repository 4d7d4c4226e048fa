package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Stock is the quantity-on-hand consumed by
// committed sales; only the stock ledger and catalog edits may change it.
type Product struct {
	BaseModel
	Description string          `gorm:"type:varchar(255);not null;index" json:"description" validate:"required"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
}

// ProductRequest is the inbound payload for catalog writes.
type ProductRequest struct {
	Description string          `json:"description" validate:"required"`
	Stock       int             `json:"stock"`
	Price       decimal.Decimal `json:"price"`
}

// ProductResponse for API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Description string          `json:"description"`
	Stock       int             `json:"stock"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	VoidedAt    *time.Time      `json:"voided_at,omitempty"`
}

// ToResponse converts Product to ProductResponse
func (p *Product) ToResponse() ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Description: p.Description,
		Stock:       p.Stock,
		Price:       p.Price,
		CreatedAt:   p.CreatedAt,
		VoidedAt:    p.VoidedAt(),
	}
}
