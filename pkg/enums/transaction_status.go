package enums

import "fmt"

// TransactionStatus is the lifecycle state of a ledger entry. Only confirmed
// entries participate in balances and reports.
type TransactionStatus string

const (
	TransactionStatusPendente   TransactionStatus = "pendente"
	TransactionStatusConfirmado TransactionStatus = "confirmado"
	TransactionStatusCancelado  TransactionStatus = "cancelado"
)

var validTransactionStatuses = []TransactionStatus{
	TransactionStatusPendente,
	TransactionStatusConfirmado,
	TransactionStatusCancelado,
}

// IsValid reports whether the value matches a known lifecycle state.
func (s TransactionStatus) IsValid() bool {
	for _, candidate := range validTransactionStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTransactionStatus converts raw input into TransactionStatus.
func ParseTransactionStatus(value string) (TransactionStatus, error) {
	for _, candidate := range validTransactionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction status %q", value)
}
