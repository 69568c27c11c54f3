package alerts

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/stockalert-app/stockalert-backend/pkg/db/models"
	"github.com/stockalert-app/stockalert-backend/pkg/enums"
)

const permissionSettingKey = "notification_permission"

// DBPermissionStore keeps the mirrored permission state in the settings
// table so it survives restarts. An explicit user action over the API is the
// prompt: Request grants, Deny records a refusal, and only another explicit
// action changes either.
type DBPermissionStore struct {
	db *gorm.DB
}

// NewDBPermissionStore returns a permission store bound to the provided database.
func NewDBPermissionStore(db *gorm.DB) *DBPermissionStore {
	return &DBPermissionStore{db: db}
}

func (s *DBPermissionStore) Current(ctx context.Context) (enums.Permission, error) {
	var setting models.Setting
	err := s.db.WithContext(ctx).First(&setting, "key = ?", permissionSettingKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return enums.PermissionDefault, nil
	}
	if err != nil {
		return enums.PermissionDefault, err
	}
	permission, err := enums.ParsePermission(setting.Value)
	if err != nil {
		return enums.PermissionDefault, nil
	}
	return permission, nil
}

func (s *DBPermissionStore) Request(ctx context.Context) (enums.Permission, error) {
	if err := s.set(ctx, enums.PermissionGranted); err != nil {
		return enums.PermissionDefault, err
	}
	return enums.PermissionGranted, nil
}

// Deny records an explicit refusal.
func (s *DBPermissionStore) Deny(ctx context.Context) error {
	return s.set(ctx, enums.PermissionDenied)
}

func (s *DBPermissionStore) set(ctx context.Context, permission enums.Permission) error {
	setting := models.Setting{Key: permissionSettingKey, Value: string(permission)}
	return s.db.WithContext(ctx).Save(&setting).Error
}
