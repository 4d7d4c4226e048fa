package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// newDryRunDB opens gorm in dry-run mode against the dummy dialector and
// captures every generated query, so the emitted SQL can be asserted on
// without a database.
func newDryRunDB(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	captured := &[]string{}
	err = db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		*captured = append(*captured, tx.Statement.SQL.String())
	})
	require.NoError(t, err)

	return db, captured
}

func lastSQL(t *testing.T, captured *[]string) string {
	t.Helper()
	require.NotEmpty(t, *captured)
	return (*captured)[len(*captured)-1]
}

func TestProductForUpdateLoadsEmitRowLock(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewProductRepo(db)

	_, _ = repo.FindActiveByIDForUpdate(db, uuid.New())
	sql := lastSQL(t, captured)
	assert.Contains(t, sql, "FOR UPDATE")
	assert.Contains(t, sql, "deleted_at")

	_, _ = repo.FindByIDForUpdate(db, uuid.New())
	sql = lastSQL(t, captured)
	assert.Contains(t, sql, "FOR UPDATE")
	assert.NotContains(t, sql, "deleted_at", "unscoped load must also see voided products")
}

func TestSaleForUpdateLoadsEmitRowLock(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewSaleRepo(db)

	_, _ = repo.FindActiveByIDForUpdate(db, uuid.New())
	assert.Contains(t, lastSQL(t, captured), "FOR UPDATE")

	_, _ = repo.FindInactiveByIDForUpdate(db, uuid.New())
	sql := lastSQL(t, captured)
	assert.Contains(t, sql, "FOR UPDATE")
	assert.Contains(t, sql, "deleted_at IS NOT NULL")
}

func TestPlainLoadsDoNotLock(t *testing.T) {
	db, captured := newDryRunDB(t)
	repo := NewProductRepo(db)

	_, _ = repo.FindActiveByID(uuid.New())
	assert.NotContains(t, lastSQL(t, captured), "FOR UPDATE")
}
