package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/igreja360/tesouraria-backend/pkg/enums"
)

// AuditLog is an append-only record of a ledger operation. Rows are never
// updated or deleted by this service.
type AuditLog struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ActorID     *uuid.UUID        `gorm:"column:ator_id;type:uuid" json:"ator_id,omitempty"`
	Action      enums.AuditAction `gorm:"column:acao;type:varchar(16);not null" json:"acao"`
	Level       enums.AuditLevel  `gorm:"column:nivel;type:varchar(16);not null;default:info" json:"nivel"`
	Description string            `gorm:"column:descricao;not null" json:"descricao"`
	Details     json.RawMessage   `gorm:"column:detalhes;type:jsonb" json:"detalhes,omitempty"`
	OriginIP    string            `gorm:"column:origem_ip" json:"origem_ip"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
