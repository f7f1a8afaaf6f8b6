package models

import (
	"time"

	"github.com/google/uuid"
)

// Fund is an optional accounting dimension (building fund, missions fund).
type Fund struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:nome;not null" json:"nome"`
	Color     string    `gorm:"column:cor;not null;default:#9E9E9E" json:"cor"`
	Active    bool      `gorm:"column:ativo;not null;default:true" json:"ativo"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Fund) TableName() string {
	return "fundos"
}
