package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SaleItem is one line of a committed sale. Price is the unit price copied
// from the product at commit time and never re-derived afterwards, so
// historical sales are immune to catalog price changes. Its void state
// mirrors the parent sale.
type SaleItem struct {
	BaseModel
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
}
