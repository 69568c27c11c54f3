package models

import "time"

// Product is the local registry entry behind the transaction log. Stock here
// is the baseline for products with no transactions; the derived level always
// wins once history exists.
type Product struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;type:text;not null" json:"name"`
	// Stock is the level recorded at creation time.
	Stock int `gorm:"column:stock;not null;default:0" json:"stock"`
	// LowStockThreshold overrides the global default when set.
	LowStockThreshold *int      `gorm:"column:low_stock_threshold" json:"low_stock_threshold,omitempty"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
