package reports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/igreja360/tesouraria-backend/pkg/db/models"
	"github.com/igreja360/tesouraria-backend/pkg/enums"
)

// NeutralColor is used for category rows without a display color.
const NeutralColor = "#9E9E9E"

// CategoryTotal is one row of the per-category breakdown. The sum spans both
// kinds; the kind split only exists at the report total level.
type CategoryTotal struct {
	Name   string          `json:"nome"`
	Color  string          `json:"cor"`
	Amount decimal.Decimal `json:"valor"`
}

// Repository runs the read-only aggregation queries a period report needs.
type Repository interface {
	Totals(ctx context.Context, start, end time.Time) (receipts, expenses decimal.Decimal, err error)
	CategoryTotals(ctx context.Context, start, end time.Time) ([]CategoryTotal, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a reports repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) confirmedInPeriod(ctx context.Context, start, end time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("status = ?", enums.TransactionStatusConfirmado).
		Where("data_lancamento >= ? AND data_lancamento < ?", start, end)
}

func (r *repository) Totals(ctx context.Context, start, end time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		Receipts decimal.Decimal
		Expenses decimal.Decimal
	}
	err := r.confirmedInPeriod(ctx, start, end).
		Select(
			"COALESCE(SUM(CASE WHEN tipo = ? THEN valor ELSE 0 END), 0) AS receipts, "+
				"COALESCE(SUM(CASE WHEN tipo = ? THEN valor ELSE 0 END), 0) AS expenses",
			enums.TransactionKindReceita, enums.TransactionKindDespesa,
		).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return row.Receipts, row.Expenses, nil
}

func (r *repository) CategoryTotals(ctx context.Context, start, end time.Time) ([]CategoryTotal, error) {
	var rows []CategoryTotal
	err := r.confirmedInPeriod(ctx, start, end).
		Joins("LEFT JOIN categorias ON categorias.id = lancamentos.categoria_id").
		Select(
			"COALESCE(categorias.nome, 'Sem categoria') AS name, "+
				"COALESCE(categorias.cor, ?) AS color, "+
				"SUM(lancamentos.valor) AS amount",
			NeutralColor,
		).
		Group("categorias.nome, categorias.cor").
		Order("amount DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
