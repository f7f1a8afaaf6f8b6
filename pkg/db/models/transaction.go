package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/igreja360/tesouraria-backend/pkg/enums"
)

// Transaction is the central ledger record. Kind is fixed at creation; the
// amount is always positive and the kind alone decides its sign in totals.
type Transaction struct {
	ID              uuid.UUID               `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Kind            enums.TransactionKind   `gorm:"column:tipo;type:varchar(16);not null" json:"tipo"`
	Description     string                  `gorm:"column:descricao;not null" json:"descricao"`
	Amount          decimal.Decimal         `gorm:"column:valor;type:numeric(14,2);not null" json:"valor"`
	TransactionDate time.Time               `gorm:"column:data_lancamento;type:date;not null" json:"data_lancamento"`
	DueDate         *time.Time              `gorm:"column:data_vencimento;type:date" json:"data_vencimento,omitempty"`
	AccountID       uuid.UUID               `gorm:"column:conta_id;type:uuid;not null" json:"conta_id"`
	Account         *Account                `gorm:"foreignKey:AccountID" json:"conta,omitempty"`
	CategoryID      uuid.UUID               `gorm:"column:categoria_id;type:uuid;not null" json:"categoria_id"`
	Category        *Category               `gorm:"foreignKey:CategoryID" json:"categoria,omitempty"`
	FundID          *uuid.UUID              `gorm:"column:fundo_id;type:uuid" json:"fundo_id,omitempty"`
	Fund            *Fund                   `gorm:"foreignKey:FundID" json:"fundo,omitempty"`
	PersonID        *uuid.UUID              `gorm:"column:pessoa_id;type:uuid" json:"pessoa_id,omitempty"`
	Person          *Person                 `gorm:"foreignKey:PersonID" json:"pessoa,omitempty"`
	PaymentMethod   string                  `gorm:"column:forma_pagamento;not null;default:dinheiro" json:"forma_pagamento"`
	DocumentNumber  *string                 `gorm:"column:numero_documento" json:"numero_documento,omitempty"`
	Status          enums.TransactionStatus `gorm:"column:status;type:varchar(16);not null;default:confirmado" json:"status"`
	Observations    *string                 `gorm:"column:observacoes" json:"observacoes,omitempty"`
	CreatedBy       uuid.UUID               `gorm:"column:criado_por;type:uuid;not null" json:"criado_por"`
	CreatedAt       time.Time               `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time               `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName maps the model onto the lancamentos table.
func (Transaction) TableName() string {
	return "lancamentos"
}
