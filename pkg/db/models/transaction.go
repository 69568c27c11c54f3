package models

import (
	"time"

	"github.com/stockalert-app/stockalert-backend/pkg/enums"
)

// Transaction records one immutable stock-changing event. Rows are only ever
// inserted; nothing in the repository layer exposes update or delete.
type Transaction struct {
	ID          int64                 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProductID   int64                 `gorm:"column:product_id;not null;index" json:"product_id"`
	ProductName string                `gorm:"column:product_name;type:text;not null" json:"product_name"`
	Type        enums.TransactionType `gorm:"column:type;type:text;not null" json:"type"`
	Quantity    int                   `gorm:"column:quantity;not null" json:"quantity"`
	OldStock    int                   `gorm:"column:old_stock;not null" json:"old_stock"`
	NewStock    int                   `gorm:"column:new_stock;not null" json:"new_stock"`
	Date        time.Time             `gorm:"column:date;not null" json:"date"`
	// Timestamp is Date in unix milliseconds, the canonical ordering key.
	// Ties are broken by ID.
	Timestamp int64 `gorm:"column:timestamp;not null;index" json:"timestamp"`
}
