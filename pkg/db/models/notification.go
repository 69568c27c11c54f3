package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a dispatched alert waiting in the local outbox. The UI
// polls unread rows, shows them through the platform, and marks them read.
type Notification struct {
	ID        uuid.UUID  `gorm:"column:id;type:text;primaryKey" json:"id"`
	Title     string     `gorm:"column:title;type:text;not null" json:"title"`
	Body      string     `gorm:"column:body;type:text;not null" json:"body"`
	Icon      string     `gorm:"column:icon;type:text;not null" json:"icon"`
	Badge     string     `gorm:"column:badge;type:text;not null" json:"badge"`
	CreatedAt time.Time  `gorm:"column:created_at;not null" json:"created_at"`
	ReadAt    *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`
}
