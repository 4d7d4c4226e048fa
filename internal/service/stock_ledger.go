package service

import (
	"fmt"

	"go-pos-backend/internal/model"
	"go-pos-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StockLedger owns every quantity-on-hand mutation driven by sales.
// Both operations run inside the caller's transaction and take a FOR UPDATE
// row lock on the product, so two concurrent reservations serialize on the
// row and cannot both pass the stock check against a stale read.
type StockLedger interface {
	Reserve(tx *gorm.DB, productID uuid.UUID, quantity int) (*model.Product, error)
	Release(tx *gorm.DB, productID uuid.UUID, quantity int) (*model.Product, error)
}

type stockLedger struct {
	productRepo repository.ProductRepository
}

func NewStockLedger(productRepo repository.ProductRepository) StockLedger {
	return &stockLedger{productRepo: productRepo}
}

// Reserve takes quantity units from an active product's stock. Fails with
// ErrProductNotFound for absent or voided products and ErrInsufficientStock
// when the request exceeds the quantity on hand; stock never goes negative.
func (l *stockLedger) Reserve(tx *gorm.DB, productID uuid.UUID, quantity int) (*model.Product, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", model.ErrInvalidArgument)
	}

	product, err := l.productRepo.FindActiveByIDForUpdate(tx, productID)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", productID, model.ErrProductNotFound)
	}

	if quantity > product.Stock {
		return nil, fmt.Errorf("product %s: %w", productID, model.ErrInsufficientStock)
	}

	product.Stock -= quantity
	if err := l.productRepo.UpdateStock(tx, product.ID, product.Stock); err != nil {
		return nil, err
	}

	return product, nil
}

// Release returns quantity units to a product's stock. The product is
// loaded regardless of void state: a voided sale may reference a product
// that has since been removed from the catalog.
func (l *stockLedger) Release(tx *gorm.DB, productID uuid.UUID, quantity int) (*model.Product, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", model.ErrInvalidArgument)
	}

	product, err := l.productRepo.FindByIDForUpdate(tx, productID)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", productID, model.ErrProductNotFound)
	}

	product.Stock += quantity
	if err := l.productRepo.UpdateStock(tx, product.ID, product.Stock); err != nil {
		return nil, err
	}

	return product, nil
}
