package repository

import "gorm.io/gorm"

// TxManager runs a unit of work inside a single database transaction.
// Commit, void and restore are multi-step read-modify-write sequences; any
// error returned from fn rolls back every mutation made through tx.
type TxManager interface {
	Do(fn func(tx *gorm.DB) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db}
}

func (m *gormTxManager) Do(fn func(tx *gorm.DB) error) error {
	return m.db.Transaction(fn)
}
