package repository

import (
	"go-pos-backend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	Update(user *model.User) error
	FindByID(id uuid.UUID) (*model.User, error)
	FindActiveByID(id uuid.UUID) (*model.User, error)
	FindInactiveByID(id uuid.UUID) (*model.User, error)
	FindByLogin(login string) (*model.User, error)
	FindActiveByLogin(login string) (*model.User, error)
	FindActive(limit, offset int) ([]model.User, error)
	FindInactive(limit, offset int) ([]model.User, error)
	FindActiveByName(name string, limit, offset int) ([]model.User, error)
	UpdatePassword(id uuid.UUID, hashedPassword string) error
	SoftDelete(id uuid.UUID) error
	Restore(id uuid.UUID) error
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepo) Update(user *model.User) error {
	return r.db.Save(user).Error
}

// FindByID looks the user up regardless of void state; sale projections
// must resolve the seller of historical sales.
func (r *userRepo) FindByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.Unscoped().First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindActiveByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindInactiveByID(id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.Unscoped().Where("deleted_at IS NOT NULL").First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByLogin includes voided accounts so a login stays reserved after the
// account is deactivated.
func (r *userRepo) FindByLogin(login string) (*model.User, error) {
	var user model.User
	if err := r.db.Unscoped().Where("login = ?", login).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindActiveByLogin(login string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("login = ?", login).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindActive(limit, offset int) ([]model.User, error) {
	var users []model.User
	err := r.db.Limit(limit).Offset(offset).Order("name ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) FindInactive(limit, offset int) ([]model.User, error) {
	var users []model.User
	err := r.db.Unscoped().Where("deleted_at IS NOT NULL").
		Limit(limit).Offset(offset).Order("name ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) FindActiveByName(name string, limit, offset int) ([]model.User, error) {
	var users []model.User
	err := r.db.Where("name ILIKE ?", "%"+name+"%").
		Limit(limit).Offset(offset).Order("name ASC").Find(&users).Error
	return users, err
}

func (r *userRepo) UpdatePassword(id uuid.UUID, hashedPassword string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("password", hashedPassword).Error
}

func (r *userRepo) SoftDelete(id uuid.UUID) error {
	return r.db.Delete(&model.User{}, "id = ?", id).Error
}

func (r *userRepo) Restore(id uuid.UUID) error {
	return r.db.Unscoped().Model(&model.User{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}
