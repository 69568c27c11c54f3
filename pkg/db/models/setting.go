package models

import "time"

// Setting is a single key/value row of durable app state, such as the
// mirrored notification permission.
type Setting struct {
	Key       string    `gorm:"column:key;type:text;primaryKey" json:"key"`
	Value     string    `gorm:"column:value;type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
