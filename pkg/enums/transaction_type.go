package enums

import "fmt"

// TransactionType describes the allowed values for the `type` column in transactions.
type TransactionType string

const (
	TransactionTypeSale    TransactionType = "sale"
	TransactionTypeRestock TransactionType = "restock"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeSale,
	TransactionTypeRestock,
}

// IsValid reports whether the value matches the canonical transaction type enum.
func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransactionType converts the raw string to TransactionType.
func ParseTransactionType(value string) (TransactionType, error) {
	for _, candidate := range validTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}
