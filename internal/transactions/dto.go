package transactions

import (
	"github.com/shopspring/decimal"

	"github.com/igreja360/tesouraria-backend/pkg/db/models"
	"github.com/igreja360/tesouraria-backend/pkg/enums"
	"github.com/igreja360/tesouraria-backend/pkg/pagination"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// DefaultPaymentMethod is assumed when a create payload omits forma_pagamento.
const DefaultPaymentMethod = "dinheiro"

// CreateTransactionInput is the create payload. Required-ness is enforced by
// the service so the first missing field can be named; the validator tags only
// reject malformed values that are present.
type CreateTransactionInput struct {
	Kind            string          `json:"tipo" validate:"omitempty,oneof=receita despesa"`
	Description     string          `json:"descricao" validate:"omitempty,max=255"`
	Amount          decimal.Decimal `json:"valor"`
	TransactionDate string          `json:"data_lancamento" validate:"omitempty,datetime=2006-01-02"`
	DueDate         string          `json:"data_vencimento" validate:"omitempty,datetime=2006-01-02"`
	AccountID       string          `json:"conta_id" validate:"omitempty,uuid"`
	CategoryID      string          `json:"categoria_id" validate:"omitempty,uuid"`
	FundID          string          `json:"fundo_id" validate:"omitempty,uuid"`
	PersonID        string          `json:"pessoa_id" validate:"omitempty,uuid"`
	PaymentMethod   string          `json:"forma_pagamento" validate:"omitempty,max=32"`
	DocumentNumber  string          `json:"numero_documento" validate:"omitempty,max=64"`
	Status          string          `json:"status" validate:"omitempty,oneof=pendente confirmado cancelado"`
	Observations    string          `json:"observacoes" validate:"omitempty,max=2000"`
}

// UpdateTransactionInput is the partial update payload. Kind and the reference
// entities are fixed at creation and intentionally absent here.
type UpdateTransactionInput struct {
	Description     *string          `json:"descricao" validate:"omitempty,min=1,max=255"`
	Amount          *decimal.Decimal `json:"valor"`
	TransactionDate *string          `json:"data_lancamento" validate:"omitempty,datetime=2006-01-02"`
	DueDate         *string          `json:"data_vencimento" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod   *string          `json:"forma_pagamento" validate:"omitempty,max=32"`
	DocumentNumber  *string          `json:"numero_documento" validate:"omitempty,max=64"`
	Status          *string          `json:"status" validate:"omitempty,oneof=pendente confirmado cancelado"`
	Observations    *string          `json:"observacoes" validate:"omitempty,max=2000"`
}

// ListFilter narrows listings, counts and balance totals. The same filter
// value feeds all three so a listing and its embedded saldo cannot disagree.
type ListFilter struct {
	Kind       enums.TransactionKind
	Status     enums.TransactionStatus
	CategoryID string
	DateFrom   string
	DateTo     string
}

// Balance is the receipts/expenses/net view of a filtered ledger slice.
// Only confirmed transactions are counted.
type Balance struct {
	Receipts decimal.Decimal `json:"receitas"`
	Expenses decimal.Decimal `json:"despesas"`
	Balance  decimal.Decimal `json:"saldo"`
}

// ListResult is the full listing envelope returned to clients.
type ListResult struct {
	Data       []models.Transaction `json:"data"`
	Balance    Balance              `json:"saldo"`
	Pagination pagination.Meta      `json:"pagination"`
}
