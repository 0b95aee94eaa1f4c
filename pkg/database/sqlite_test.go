package database

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestSQLiteLowerIsUnicodeAware(t *testing.T) {
	db, err := NewSQLiteConnection(":memory:", Options{LogLevel: logger.Silent})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	var lowered string
	require.NoError(t, db.Raw("SELECT LOWER(?)", "ÉLODIE Zürich").Scan(&lowered).Error)
	assert.Equal(t, "élodie zürich", lowered)

	var null sql.NullString
	require.NoError(t, db.Raw("SELECT LOWER(NULL)").Row().Scan(&null))
	assert.False(t, null.Valid)

	var n int64
	require.NoError(t, db.Raw("SELECT LOWER(42)").Row().Scan(&n))
	assert.Equal(t, int64(42), n)
}
