package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentCard PaymentMethod = "CARD"
	PaymentCash PaymentMethod = "CASH"
	PaymentPix  PaymentMethod = "PIX"
)

// Sale is a committed basket. Total is the pre-discount sum of
// quantity * unit price frozen at commit time; the discount percentage is
// stored as informational data and applied only when a receipt is rendered.
type Sale struct {
	BaseModel
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	PaymentMethod PaymentMethod   `gorm:"type:varchar(10);not null" json:"payment_method"`
	Discount      int             `gorm:"not null;default:0" json:"discount"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Items         []SaleItem      `json:"items,omitempty"`
}

// SaleItemRequest is one requested basket line.
type SaleItemRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"uuid_required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// SaleRequest is the inbound basket.
type SaleRequest struct {
	PaymentMethod string            `json:"payment_method" validate:"required,oneof=CARD CASH PIX"`
	Discount      int               `json:"discount" validate:"gte=0,lte=100"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SaleResponse for API responses
type SaleResponse struct {
	ID            uuid.UUID       `json:"id"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Discount      int             `json:"discount"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
	VoidedAt      *time.Time      `json:"voided_at,omitempty"`
}

// ToResponse converts Sale to SaleResponse
func (s *Sale) ToResponse() SaleResponse {
	return SaleResponse{
		ID:            s.ID,
		PaymentMethod: s.PaymentMethod,
		Discount:      s.Discount,
		Total:         s.Total,
		CreatedAt:     s.CreatedAt,
		VoidedAt:      s.VoidedAt(),
	}
}

// SaleDetailItem joins one item with the referenced product's description.
// Price is the unit price snapshot taken at commit, not the current
// catalog price.
type SaleDetailItem struct {
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// SaleDetailsResponse is the read-only projection of a sale for receipts.
type SaleDetailsResponse struct {
	SellerName string           `json:"seller_name"`
	Items      []SaleDetailItem `json:"items"`
}

// SaleReceiptResponse carries the presentation-time discount math.
type SaleReceiptResponse struct {
	Discount       int              `json:"discount"`
	Subtotal       decimal.Decimal  `json:"subtotal"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	Total          decimal.Decimal  `json:"total"`
	Items          []SaleDetailItem `json:"items"`
}
