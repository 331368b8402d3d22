package repository

import (
	"testing"

	"go-shop-pos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)
	return db
}

// The balance checks in the stock and sale paths rely on this lock being
// present in the emitted SQL; without it concurrent sales of the last unit
// could both pass validation.
func TestLockForUpdateEmitsRowLock(t *testing.T) {
	db := dryRunDB(t)

	var product model.Product
	stmt := LockForUpdate(db).Find(&product, "id = ?", uuid.Nil).Statement
	assert.Contains(t, stmt.SQL.String(), "FOR UPDATE")
}

func TestUnlockedQueryHasNoRowLock(t *testing.T) {
	db := dryRunDB(t)

	var product model.Product
	stmt := db.Find(&product, "id = ?", uuid.Nil).Statement
	assert.NotContains(t, stmt.SQL.String(), "FOR UPDATE")
}
