package repository

import (
	"time"

	"go-pos-backend/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	UpdateTotal(tx *gorm.DB, id uuid.UUID, total decimal.Decimal) error
	FindByID(id uuid.UUID) (*model.Sale, error)
	FindActiveByID(id uuid.UUID) (*model.Sale, error)
	FindInactiveByID(id uuid.UUID) (*model.Sale, error)
	FindActiveByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Sale, error)
	FindInactiveByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Sale, error)
	FindActive(limit, offset int) ([]model.Sale, error)
	FindInactive(limit, offset int) ([]model.Sale, error)
	FindActiveByDate(start, end time.Time) ([]model.Sale, error)
	FindInactiveByDate(start, end time.Time) ([]model.Sale, error)
	MarkVoided(tx *gorm.DB, id uuid.UUID, at time.Time) error
	MarkRestored(tx *gorm.DB, id uuid.UUID) error
	SummaryByDate(start, end time.Time) ([]PaymentTotal, error)
}

// PaymentTotal aggregates committed sales per payment method for reporting.
type PaymentTotal struct {
	PaymentMethod string          `json:"payment_method"`
	Count         int64           `json:"count"`
	Total         decimal.Decimal `json:"total"`
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// Create takes the enclosing tx so the sale row is rolled back together
// with its items and stock moves.
func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) UpdateTotal(tx *gorm.DB, id uuid.UUID, total decimal.Decimal) error {
	return tx.Model(&model.Sale{}).Where("id = ?", id).Update("total", total).Error
}

func (r *saleRepo) FindByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Unscoped().First(&sale, "id = ?", id).Error
	return &sale, err
}

func (r *saleRepo) FindActiveByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.First(&sale, "id = ?", id).Error
	return &sale, err
}

func (r *saleRepo) FindInactiveByID(id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Unscoped().Where("deleted_at IS NOT NULL").First(&sale, "id = ?", id).Error
	return &sale, err
}

// FindActiveByIDForUpdate locks the sale row for the duration of tx, so
// concurrent voids of the same sale serialize and only one sees it active.
func (r *saleRepo) FindActiveByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&sale, "id = ?", id).Error
	return &sale, err
}

// FindInactiveByIDForUpdate locks a voided sale row; the restore path
// re-validates the void state under the lock.
func (r *saleRepo) FindInactiveByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := tx.Unscoped().Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("deleted_at IS NOT NULL").First(&sale, "id = ?", id).Error
	return &sale, err
}

func (r *saleRepo) FindActive(limit, offset int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Limit(limit).Offset(offset).Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindInactive(limit, offset int) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Unscoped().Where("deleted_at IS NOT NULL").
		Limit(limit).Offset(offset).Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindActiveByDate(start, end time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at ASC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindInactiveByDate(start, end time.Time) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Unscoped().Where("deleted_at IS NOT NULL").
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at ASC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) MarkVoided(tx *gorm.DB, id uuid.UUID, at time.Time) error {
	return tx.Model(&model.Sale{}).Where("id = ?", id).Update("deleted_at", at).Error
}

func (r *saleRepo) MarkRestored(tx *gorm.DB, id uuid.UUID) error {
	return tx.Unscoped().Model(&model.Sale{}).Where("id = ?", id).Update("deleted_at", nil).Error
}

func (r *saleRepo) SummaryByDate(start, end time.Time) ([]PaymentTotal, error) {
	var results []PaymentTotal

	rows, err := r.db.Model(&model.Sale{}).
		Select("payment_method, COUNT(*) as count, COALESCE(SUM(total), 0) as total").
		Where("created_at BETWEEN ? AND ?", start, end).
		Group("payment_method").
		Order("payment_method ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data PaymentTotal
		if err := rows.Scan(&data.PaymentMethod, &data.Count, &data.Total); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}
