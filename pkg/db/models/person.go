package models

import (
	"time"

	"github.com/google/uuid"
)

// Person is the optional counterparty of a transaction.
type Person struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:nome;not null" json:"nome"`
	Active    bool      `gorm:"column:ativo;not null;default:true" json:"ativo"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Person) TableName() string {
	return "pessoas"
}
