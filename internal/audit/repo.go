package audit

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/igreja360/tesouraria-backend/pkg/db/models"
)

// Repository appends audit log rows. There is deliberately no update or delete
// surface; the table is append-only.
type Repository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an audit repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *models.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}
