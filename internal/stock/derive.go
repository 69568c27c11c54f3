package stock

import (
	"sort"

	"github.com/stockalert-app/stockalert-backend/pkg/db/models"
)

// Level is the derived stock position for one product.
type Level struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	Threshold int    `json:"threshold"`
	Low       bool   `json:"low"`
}

// Mismatch reports one broken link in a product's old/new stock chain. It is
// a corruption signal, not an error: derivation keeps the latest new stock.
type Mismatch struct {
	ProductID     int64 `json:"product_id"`
	TransactionID int64 `json:"transaction_id"`
	ExpectedOld   int   `json:"expected_old_stock"`
	ActualOld     int   `json:"actual_old_stock"`
}

// Fold replays the transaction log onto the registry baselines and returns
// current per-product levels plus any chain violations found along the way.
// A product's level is the newest transaction's new stock, or its baseline
// when no transactions exist. Thresholds are left to the caller.
func Fold(registry []models.Product, transactions []models.Transaction) ([]Level, []Mismatch) {
	ordered := make([]models.Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Timestamp != ordered[j].Timestamp {
			return ordered[i].Timestamp < ordered[j].Timestamp
		}
		return ordered[i].ID < ordered[j].ID
	})

	type position struct {
		stock int
		name  string
	}
	derived := make(map[int64]position)
	var mismatches []Mismatch

	for _, tx := range ordered {
		prev, seen := derived[tx.ProductID]
		if seen && tx.OldStock != prev.stock {
			mismatches = append(mismatches, Mismatch{
				ProductID:     tx.ProductID,
				TransactionID: tx.ID,
				ExpectedOld:   prev.stock,
				ActualOld:     tx.OldStock,
			})
		}
		derived[tx.ProductID] = position{stock: tx.NewStock, name: tx.ProductName}
	}

	levels := make([]Level, 0, len(registry))
	listed := make(map[int64]bool, len(registry))
	for _, product := range registry {
		listed[product.ID] = true
		level := Level{ProductID: product.ID, Name: product.Name, Stock: product.Stock}
		if pos, ok := derived[product.ID]; ok {
			level.Stock = pos.stock
		}
		levels = append(levels, level)
	}

	// Products that only exist in the log still get a level, under the
	// denormalized name carried on their transactions.
	var orphans []Level
	for productID, pos := range derived {
		if listed[productID] {
			continue
		}
		orphans = append(orphans, Level{ProductID: productID, Name: pos.name, Stock: pos.stock})
	}
	sort.Slice(orphans, func(i, j int) bool { return orphans[i].ProductID < orphans[j].ProductID })
	levels = append(levels, orphans...)

	return levels, mismatches
}
