package repository

import (
	"time"

	"go-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleItemRepository interface {
	Create(tx *gorm.DB, item *model.SaleItem) error
	FindBySaleID(tx *gorm.DB, saleID uuid.UUID) ([]model.SaleItem, error)
	FindActiveBySaleID(tx *gorm.DB, saleID uuid.UUID) ([]model.SaleItem, error)
	MarkVoidedBySaleID(tx *gorm.DB, saleID uuid.UUID, at time.Time) error
	MarkRestoredBySaleID(tx *gorm.DB, saleID uuid.UUID) error
}

type saleItemRepo struct {
	db *gorm.DB
}

func NewSaleItemRepo(db *gorm.DB) SaleItemRepository {
	return &saleItemRepo{db}
}

// conn picks the enclosing tx when the caller runs inside one; plain reads
// (detail and receipt projections) pass nil.
func (r *saleItemRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *saleItemRepo) Create(tx *gorm.DB, item *model.SaleItem) error {
	return tx.Create(item).Error
}

// FindBySaleID returns the full item set regardless of void state; a sale
// is voided and restored as a whole, never item by item.
func (r *saleItemRepo) FindBySaleID(tx *gorm.DB, saleID uuid.UUID) ([]model.SaleItem, error) {
	var items []model.SaleItem
	err := r.conn(tx).Unscoped().Where("sale_id = ?", saleID).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *saleItemRepo) FindActiveBySaleID(tx *gorm.DB, saleID uuid.UUID) ([]model.SaleItem, error) {
	var items []model.SaleItem
	err := r.conn(tx).Where("sale_id = ?", saleID).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *saleItemRepo) MarkVoidedBySaleID(tx *gorm.DB, saleID uuid.UUID, at time.Time) error {
	return tx.Model(&model.SaleItem{}).Where("sale_id = ?", saleID).Update("deleted_at", at).Error
}

func (r *saleItemRepo) MarkRestoredBySaleID(tx *gorm.DB, saleID uuid.UUID) error {
	return tx.Unscoped().Model(&model.SaleItem{}).Where("sale_id = ?", saleID).Update("deleted_at", nil).Error
}
