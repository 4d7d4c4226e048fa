package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents a staff account that can authenticate and own sales
type User struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Login    string `gorm:"type:varchar(50);uniqueIndex;not null" json:"login" validate:"required"`
	Password string `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	Role     string `gorm:"type:varchar(20);not null" json:"role" validate:"required,oneof=ADMIN MANAGER SELLER"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserRequest is the inbound payload for creating or updating a staff account.
type UserRequest struct {
	Name     string `json:"name" validate:"required"`
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=ADMIN MANAGER SELLER"`
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Login     string     `json:"login"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	VoidedAt  *time.Time `json:"voided_at,omitempty"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Login:     u.Login,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		VoidedAt:  u.VoidedAt(),
	}
}
