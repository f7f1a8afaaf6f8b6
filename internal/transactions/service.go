package transactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/igreja360/tesouraria-backend/internal/audit"
	"github.com/igreja360/tesouraria-backend/pkg/db/models"
	"github.com/igreja360/tesouraria-backend/pkg/enums"
	pkgerrors "github.com/igreja360/tesouraria-backend/pkg/errors"
	"github.com/igreja360/tesouraria-backend/pkg/pagination"
)

// Service exposes the ledger operations. Every call audits itself after the
// primary action succeeds; the audit append never fails the operation.
type Service interface {
	List(ctx context.Context, actor audit.Actor, filter ListFilter, page pagination.Params) (*ListResult, error)
	Get(ctx context.Context, actor audit.Actor, id uuid.UUID) (*models.Transaction, error)
	Create(ctx context.Context, actor audit.Actor, input CreateTransactionInput) (*models.Transaction, error)
	Update(ctx context.Context, actor audit.Actor, id uuid.UUID, input UpdateTransactionInput) (*models.Transaction, error)
	Delete(ctx context.Context, actor audit.Actor, id uuid.UUID) error
}

type service struct {
	repo     Repository
	recorder audit.Recorder
}

// NewService wires the transactions service dependencies.
func NewService(repo Repository, recorder audit.Recorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("transactions repository required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: repo, recorder: recorder}, nil
}

func (s *service) List(ctx context.Context, actor audit.Actor, filter ListFilter, page pagination.Params) (*ListResult, error) {
	rows, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list transactions")
	}

	// The balance covers every confirmed row matching the filter, not just
	// the returned page, and reuses the listing's own filter.
	totals, err := s.repo.Totals(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "compute balance")
	}

	s.recorder.Record(audit.Entry{
		Actor:       actor,
		Action:      enums.AuditActionView,
		Description: "transaction list viewed",
		Details:     map[string]any{"total": total},
	})

	return &ListResult{
		Data:       rows,
		Balance:    balanceFromTotals(totals),
		Pagination: pagination.BuildMeta(page, total),
	}, nil
}

func (s *service) Get(ctx context.Context, actor audit.Actor, id uuid.UUID) (*models.Transaction, error) {
	tx, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "get transaction")
	}

	s.recorder.Record(audit.Entry{
		Actor:       actor,
		Action:      enums.AuditActionView,
		Description: "transaction viewed",
		Details:     map[string]any{"id": id.String()},
	})
	return tx, nil
}

func (s *service) Create(ctx context.Context, actor audit.Actor, input CreateTransactionInput) (*models.Transaction, error) {
	if actor.ID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authenticated actor required")
	}

	if err := firstMissingField(input); err != nil {
		return nil, err
	}

	kind, err := enums.ParseTransactionKind(input.Kind)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid transaction kind").
			WithDetails(map[string]any{"tipo": input.Kind})
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "valor must be greater than zero")
	}

	accountID, err := uuid.Parse(input.AccountID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid conta_id")
	}
	categoryID, err := uuid.Parse(input.CategoryID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid categoria_id")
	}

	txDate := todayUTC()
	if input.TransactionDate != "" {
		txDate, err = parseDate(input.TransactionDate, "data_lancamento")
		if err != nil {
			return nil, err
		}
	}

	status := enums.TransactionStatusConfirmado
	if input.Status != "" {
		status, err = enums.ParseTransactionStatus(input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status").
				WithDetails(map[string]any{"status": input.Status})
		}
	}

	paymentMethod := input.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	tx := &models.Transaction{
		Kind:            kind,
		Description:     input.Description,
		Amount:          input.Amount,
		TransactionDate: txDate,
		AccountID:       accountID,
		CategoryID:      categoryID,
		PaymentMethod:   paymentMethod,
		Status:          status,
		CreatedBy:       actor.ID,
	}

	if input.DueDate != "" {
		due, err := parseDate(input.DueDate, "data_vencimento")
		if err != nil {
			return nil, err
		}
		tx.DueDate = &due
	}
	if input.FundID != "" {
		fundID, err := uuid.Parse(input.FundID)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid fundo_id")
		}
		tx.FundID = &fundID
	}
	if input.PersonID != "" {
		personID, err := uuid.Parse(input.PersonID)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid pessoa_id")
		}
		tx.PersonID = &personID
	}
	if input.DocumentNumber != "" {
		doc := input.DocumentNumber
		tx.DocumentNumber = &doc
	}
	if input.Observations != "" {
		obs := input.Observations
		tx.Observations = &obs
	}

	if err := s.repo.Create(ctx, tx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create transaction")
	}

	s.recorder.Record(audit.Entry{
		Actor:       actor,
		Action:      enums.AuditActionCreate,
		Description: "transaction created",
		Details: map[string]any{
			"id":        tx.ID.String(),
			"tipo":      string(tx.Kind),
			"descricao": tx.Description,
			"valor":     tx.Amount.String(),
		},
	})

	created, err := s.repo.Get(ctx, tx.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload created transaction")
	}
	return created, nil
}

func (s *service) Update(ctx context.Context, actor audit.Actor, id uuid.UUID, input UpdateTransactionInput) (*models.Transaction, error) {
	tx, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "get transaction")
	}

	if input.Description != nil {
		tx.Description = *input.Description
	}
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "valor must be greater than zero")
		}
		tx.Amount = *input.Amount
	}
	if input.TransactionDate != nil {
		date, err := parseDate(*input.TransactionDate, "data_lancamento")
		if err != nil {
			return nil, err
		}
		tx.TransactionDate = date
	}
	if input.DueDate != nil {
		if *input.DueDate == "" {
			tx.DueDate = nil
		} else {
			due, err := parseDate(*input.DueDate, "data_vencimento")
			if err != nil {
				return nil, err
			}
			tx.DueDate = &due
		}
	}
	if input.PaymentMethod != nil {
		tx.PaymentMethod = *input.PaymentMethod
	}
	if input.DocumentNumber != nil {
		tx.DocumentNumber = input.DocumentNumber
	}
	if input.Status != nil {
		// Any transition between the three states is allowed, matching the
		// manual bookkeeping workflow this replaces.
		status, err := enums.ParseTransactionStatus(*input.Status)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status").
				WithDetails(map[string]any{"status": *input.Status})
		}
		tx.Status = status
	}
	if input.Observations != nil {
		tx.Observations = input.Observations
	}

	if err := s.repo.Update(ctx, tx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update transaction")
	}

	s.recorder.Record(audit.Entry{
		Actor:       actor,
		Action:      enums.AuditActionUpdate,
		Description: "transaction updated",
		Details: map[string]any{
			"id":        tx.ID.String(),
			"descricao": tx.Description,
			"valor":     tx.Amount.String(),
			"status":    string(tx.Status),
		},
	})

	updated, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload updated transaction")
	}
	return updated, nil
}

func (s *service) Delete(ctx context.Context, actor audit.Actor, id uuid.UUID) error {
	// Snapshot before the hard delete so the audit entry can describe what
	// was removed.
	tx, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "get transaction")
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete transaction")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "transaction not found")
	}

	s.recorder.Record(audit.Entry{
		Actor:       actor,
		Action:      enums.AuditActionDelete,
		Description: "transaction deleted",
		Details: map[string]any{
			"id":        id.String(),
			"descricao": tx.Description,
			"valor":     tx.Amount.String(),
		},
	})
	return nil
}

func balanceFromTotals(totals Totals) Balance {
	return Balance{
		Receipts: totals.Receipts,
		Expenses: totals.Expenses,
		Balance:  totals.Receipts.Sub(totals.Expenses),
	}
}

// firstMissingField mirrors the create contract: the error names the first
// required field that is absent, checked in a fixed order.
func firstMissingField(input CreateTransactionInput) error {
	checks := []struct {
		field   string
		present bool
	}{
		{"tipo", input.Kind != ""},
		{"descricao", input.Description != ""},
		{"valor", !input.Amount.IsZero()},
		{"conta_id", input.AccountID != ""},
		{"categoria_id", input.CategoryID != ""},
	}
	for _, check := range checks {
		if !check.present {
			return pkgerrors.New(pkgerrors.CodeValidation, "missing required field: "+check.field).
				WithDetails(map[string]any{"field": check.field})
		}
	}
	return nil
}

func parseDate(value, field string) (time.Time, error) {
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid date").
			WithDetails(map[string]any{"field": field})
	}
	return date, nil
}

func todayUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
