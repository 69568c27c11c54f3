package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertEvent is the persisted last-alerted snapshot for one product. The
// cool-down policy reads the most recent row per product to decide whether a
// still-low product may be alerted again, so the state survives restarts.
type AlertEvent struct {
	ID        uuid.UUID `gorm:"column:id;type:text;primaryKey" json:"id"`
	ProductID int64     `gorm:"column:product_id;not null;index" json:"product_id"`
	Stock     int       `gorm:"column:stock;not null" json:"stock"`
	SentAt    time.Time `gorm:"column:sent_at;not null" json:"sent_at"`
}
