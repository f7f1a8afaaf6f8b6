package enums

import "fmt"

// TransactionKind classifies a ledger movement and fixes its sign in
// aggregation. Amounts are always stored positive.
type TransactionKind string

const (
	TransactionKindReceita TransactionKind = "receita"
	TransactionKindDespesa TransactionKind = "despesa"
)

var validTransactionKinds = []TransactionKind{
	TransactionKindReceita,
	TransactionKindDespesa,
}

// IsValid reports whether the value matches one of the two ledger kinds.
func (k TransactionKind) IsValid() bool {
	for _, candidate := range validTransactionKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseTransactionKind converts raw input into TransactionKind.
func ParseTransactionKind(value string) (TransactionKind, error) {
	for _, candidate := range validTransactionKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction kind %q", value)
}
