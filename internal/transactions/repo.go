package transactions

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/igreja360/tesouraria-backend/pkg/db/models"
	"github.com/igreja360/tesouraria-backend/pkg/enums"
	"github.com/igreja360/tesouraria-backend/pkg/pagination"
)

// Totals carries the raw confirmed sums a balance is derived from.
type Totals struct {
	Receipts decimal.Decimal
	Expenses decimal.Decimal
}

// Repository manages persistence for ledger transactions.
type Repository interface {
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Transaction, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Transaction, error)
	Create(ctx context.Context, tx *models.Transaction) error
	Update(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	Totals(ctx context.Context, filter ListFilter) (Totals, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a transactions repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// applyFilter translates the ListFilter into query predicates. List, the page
// count and Totals all go through here so they stay consistent with each other.
func applyFilter(q *gorm.DB, filter ListFilter) *gorm.DB {
	if filter.Kind != "" {
		q = q.Where("tipo = ?", filter.Kind)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.CategoryID != "" {
		q = q.Where("categoria_id = ?", filter.CategoryID)
	}
	if filter.DateFrom != "" {
		q = q.Where("data_lancamento >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		// Exclusive upper bound: a month report and a listing filtered with
		// data_fim = first day of the next month cover the same rows.
		q = q.Where("data_lancamento < ?", filter.DateTo)
	}
	return q
}

func (r *repository) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Transaction, int64, error) {
	norm := pagination.Normalize(page)

	var total int64
	if err := applyFilter(r.db.WithContext(ctx).Model(&models.Transaction{}), filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Transaction
	err := applyFilter(r.db.WithContext(ctx), filter).
		Preload("Account").
		Preload("Category").
		Preload("Fund").
		Preload("Person").
		Order("data_lancamento DESC, created_at DESC").
		Offset(page.Offset()).
		Limit(norm.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.WithContext(ctx).
		Preload("Account").
		Preload("Category").
		Preload("Fund").
		Preload("Person").
		First(&tx, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *repository) Create(ctx context.Context, tx *models.Transaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r *repository) Update(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Transaction{}, "id = ?", id)
	return result.RowsAffected, result.Error
}

func (r *repository) Totals(ctx context.Context, filter ListFilter) (Totals, error) {
	var row struct {
		Receipts decimal.Decimal
		Expenses decimal.Decimal
	}
	err := applyFilter(r.db.WithContext(ctx).Model(&models.Transaction{}), filter).
		Where("status = ?", enums.TransactionStatusConfirmado).
		Select(
			"COALESCE(SUM(CASE WHEN tipo = ? THEN valor ELSE 0 END), 0) AS receipts, "+
				"COALESCE(SUM(CASE WHEN tipo = ? THEN valor ELSE 0 END), 0) AS expenses",
			enums.TransactionKindReceita, enums.TransactionKindDespesa,
		).
		Scan(&row).Error
	if err != nil {
		return Totals{}, err
	}
	return Totals{Receipts: row.Receipts, Expenses: row.Expenses}, nil
}
