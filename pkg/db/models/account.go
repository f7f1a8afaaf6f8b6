package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a reference entity owned by the administrative module; the ledger
// only reads it. Inactive accounts remain valid targets for historical rows.
type Account struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:nome;not null" json:"nome"`
	Active    bool      `gorm:"column:ativo;not null;default:true" json:"ativo"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Account) TableName() string {
	return "contas"
}
