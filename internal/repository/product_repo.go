package repository

import (
	"go-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product) error
	Update(product *model.Product) error
	FindActive(limit, offset int) ([]model.Product, error)
	FindInactive(limit, offset int) ([]model.Product, error)
	FindActiveByDescription(description string, limit, offset int) ([]model.Product, error)
	FindActiveByID(id uuid.UUID) (*model.Product, error)
	FindInactiveByID(id uuid.UUID) (*model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByDescription(description string) (*model.Product, error)
	FindActiveByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int) error
	SoftDelete(id uuid.UUID) error
	Restore(id uuid.UUID) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) FindActive(limit, offset int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Limit(limit).Offset(offset).Order("description ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindInactive(limit, offset int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Unscoped().Where("deleted_at IS NOT NULL").
		Limit(limit).Offset(offset).Order("description ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindActiveByDescription(description string, limit, offset int) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("description ILIKE ?", "%"+description+"%").
		Limit(limit).Offset(offset).Order("description ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindActiveByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindInactiveByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Unscoped().Where("deleted_at IS NOT NULL").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Unscoped().First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByDescription(description string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "description = ?", description).Error
	return &product, err
}

// FindActiveByIDForUpdate locks the product row for the duration of tx
// (Pessimistic Locking), so concurrent stock checks serialize on it.
func (r *productRepo) FindActiveByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", id).Error
	return &product, err
}

// FindByIDForUpdate locks the product row including voided products; a
// voided sale may still reference an active product and vice versa.
func (r *productRepo) FindByIDForUpdate(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := tx.Unscoped().Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", id).Error
	return &product, err
}

// UpdateStock receives the enclosing tx so the write shares its
// transaction and row lock
func (r *productRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int) error {
	return tx.Unscoped().Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock", newStock).Error
}

func (r *productRepo) SoftDelete(id uuid.UUID) error {
	return r.db.Delete(&model.Product{}, "id = ?", id).Error
}

func (r *productRepo) Restore(id uuid.UUID) error {
	return r.db.Unscoped().Model(&model.Product{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}
