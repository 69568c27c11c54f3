package alerts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockalert-app/stockalert-backend/pkg/enums"
)

func setupSettingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func TestDBPermissionStore_DefaultWhenUnset(t *testing.T) {
	store := NewDBPermissionStore(setupSettingsTestDB(t))

	permission, err := store.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, enums.PermissionDefault, permission)
}

func TestDBPermissionStore_RequestGrantsAndPersists(t *testing.T) {
	db := setupSettingsTestDB(t)
	store := NewDBPermissionStore(db)

	permission, err := store.Request(context.Background())
	require.NoError(t, err)
	assert.Equal(t, enums.PermissionGranted, permission)

	// A fresh store over the same database sees the persisted state.
	again := NewDBPermissionStore(db)
	permission, err = again.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, enums.PermissionGranted, permission)
}

func TestDBPermissionStore_DenySticks(t *testing.T) {
	store := NewDBPermissionStore(setupSettingsTestDB(t))

	require.NoError(t, store.Deny(context.Background()))

	permission, err := store.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, enums.PermissionDenied, permission)
}

func TestDBPermissionStore_GarbageValueFallsBackToDefault(t *testing.T) {
	db := setupSettingsTestDB(t)
	require.NoError(t, db.Exec(`INSERT INTO settings (key, value, updated_at) VALUES ('notification_permission', 'maybe', CURRENT_TIMESTAMP)`).Error)

	store := NewDBPermissionStore(db)
	permission, err := store.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, enums.PermissionDefault, permission)
}
