package transactions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/igreja360/tesouraria-backend/internal/audit"
	"github.com/igreja360/tesouraria-backend/pkg/db/models"
	"github.com/igreja360/tesouraria-backend/pkg/enums"
	pkgerrors "github.com/igreja360/tesouraria-backend/pkg/errors"
	"github.com/igreja360/tesouraria-backend/pkg/pagination"
)

type stubRepo struct {
	rows    []models.Transaction
	total   int64
	totals  Totals
	err     error
	deleted int64

	created *models.Transaction
	updated *models.Transaction
}

func (s *stubRepo) List(context.Context, ListFilter, pagination.Params) ([]models.Transaction, int64, error) {
	return s.rows, s.total, s.err
}

func (s *stubRepo) Get(_ context.Context, id uuid.UUID) (*models.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.created != nil && s.created.ID == id {
		return s.created, nil
	}
	for i := range s.rows {
		if s.rows[i].ID == id {
			return &s.rows[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) Create(_ context.Context, tx *models.Transaction) error {
	if s.err != nil {
		return s.err
	}
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	s.created = tx
	return nil
}

func (s *stubRepo) Update(_ context.Context, tx *models.Transaction) error {
	if s.err != nil {
		return s.err
	}
	s.updated = tx
	return nil
}

func (s *stubRepo) Delete(context.Context, uuid.UUID) (int64, error) {
	return s.deleted, s.err
}

func (s *stubRepo) Totals(context.Context, ListFilter) (Totals, error) {
	return s.totals, s.err
}

type memoryRecorder struct {
	entries []audit.Entry
}

func (m *memoryRecorder) Record(entry audit.Entry) {
	m.entries = append(m.entries, entry)
}

func validCreateInput() CreateTransactionInput {
	return CreateTransactionInput{
		Kind:        "receita",
		Description: "Dizimo",
		Amount:      decimal.NewFromInt(100),
		AccountID:   uuid.NewString(),
		CategoryID:  uuid.NewString(),
	}
}

func actorForTest() audit.Actor {
	return audit.Actor{ID: uuid.New(), IP: "10.0.0.1"}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil, &memoryRecorder{})
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestNewServiceRequiresRecorder(t *testing.T) {
	_, err := NewService(&stubRepo{}, nil)
	if err == nil {
		t.Fatal("expected error creating service without recorder")
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	repo := &stubRepo{}
	rec := &memoryRecorder{}
	svc, err := NewService(repo, rec)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	created, err := svc.Create(context.Background(), actorForTest(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != enums.TransactionStatusConfirmado {
		t.Fatalf("expected default status confirmado, got %s", created.Status)
	}
	if created.PaymentMethod != DefaultPaymentMethod {
		t.Fatalf("expected default payment method, got %s", created.PaymentMethod)
	}
	today := time.Now().UTC()
	if created.TransactionDate.Year() != today.Year() || created.TransactionDate.YearDay() != today.YearDay() {
		t.Fatalf("expected transaction date to default to today, got %s", created.TransactionDate)
	}
	if len(rec.entries) != 1 || rec.entries[0].Action != enums.AuditActionCreate {
		t.Fatalf("expected one create audit entry, got %+v", rec.entries)
	}
}

func TestCreateRecordsActor(t *testing.T) {
	repo := &stubRepo{}
	svc, _ := NewService(repo, &memoryRecorder{})
	actor := actorForTest()

	created, err := svc.Create(context.Background(), actor, validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.CreatedBy != actor.ID {
		t.Fatalf("expected criado_por %s, got %s", actor.ID, created.CreatedBy)
	}
}

func TestCreateRequiresActor(t *testing.T) {
	svc, _ := NewService(&stubRepo{}, &memoryRecorder{})

	_, err := svc.Create(context.Background(), audit.Actor{}, validCreateInput())
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestCreateNamesFirstMissingField(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateTransactionInput)
		field  string
	}{
		{"missing tipo", func(in *CreateTransactionInput) { in.Kind = "" }, "tipo"},
		{"missing descricao", func(in *CreateTransactionInput) { in.Description = "" }, "descricao"},
		{"missing valor", func(in *CreateTransactionInput) { in.Amount = decimal.Zero }, "valor"},
		{"missing conta_id", func(in *CreateTransactionInput) { in.AccountID = "" }, "conta_id"},
		{"missing categoria_id", func(in *CreateTransactionInput) { in.CategoryID = "" }, "categoria_id"},
		{"tipo reported before descricao", func(in *CreateTransactionInput) {
			in.Kind = ""
			in.Description = ""
		}, "tipo"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubRepo{}
			svc, _ := NewService(repo, &memoryRecorder{})

			input := validCreateInput()
			tc.mutate(&input)

			_, err := svc.Create(context.Background(), actorForTest(), input)
			if err == nil {
				t.Fatal("expected error")
			}
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			if typed.Message() != "missing required field: "+tc.field {
				t.Fatalf("expected first missing field %q, got %q", tc.field, typed.Message())
			}
			if repo.created != nil {
				t.Fatal("nothing should be persisted on validation failure")
			}
		})
	}
}

func TestCreateRejectsNonPositiveAmount(t *testing.T) {
	repo := &stubRepo{}
	svc, _ := NewService(repo, &memoryRecorder{})

	input := validCreateInput()
	input.Amount = decimal.NewFromInt(-5)

	_, err := svc.Create(context.Background(), actorForTest(), input)
	if err == nil {
		t.Fatal("expected error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.created != nil {
		t.Fatal("nothing should be persisted on validation failure")
	}
}

func TestCreateRejectsUnknownKind(t *testing.T) {
	svc, _ := NewService(&stubRepo{}, &memoryRecorder{})

	input := validCreateInput()
	input.Kind = "transferencia"

	_, err := svc.Create(context.Background(), actorForTest(), input)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetNotFound(t *testing.T) {
	svc, _ := NewService(&stubRepo{}, &memoryRecorder{})

	_, err := svc.Get(context.Background(), actorForTest(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetDependencyError(t *testing.T) {
	svc, _ := NewService(&stubRepo{err: errors.New("boom")}, &memoryRecorder{})

	_, err := svc.Get(context.Background(), actorForTest(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestUpdateAppliesPartialChanges(t *testing.T) {
	id := uuid.New()
	repo := &stubRepo{rows: []models.Transaction{{
		ID:          id,
		Kind:        enums.TransactionKindReceita,
		Description: "Oferta",
		Amount:      decimal.NewFromInt(50),
		Status:      enums.TransactionStatusPendente,
	}}}
	rec := &memoryRecorder{}
	svc, _ := NewService(repo, rec)

	newAmount := decimal.NewFromInt(75)
	newStatus := "confirmado"
	updated, err := svc.Update(context.Background(), actorForTest(), id, UpdateTransactionInput{
		Amount: &newAmount,
		Status: &newStatus,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.Amount.Equal(newAmount) {
		t.Fatalf("expected amount %s, got %s", newAmount, updated.Amount)
	}
	if updated.Status != enums.TransactionStatusConfirmado {
		t.Fatalf("expected status confirmado, got %s", updated.Status)
	}
	if updated.Description != "Oferta" {
		t.Fatalf("untouched field changed: %s", updated.Description)
	}
	if len(rec.entries) != 1 || rec.entries[0].Action != enums.AuditActionUpdate {
		t.Fatalf("expected one update audit entry, got %+v", rec.entries)
	}
}

func TestUpdateAllowsAnyStatusTransition(t *testing.T) {
	transitions := []struct{ from, to enums.TransactionStatus }{
		{enums.TransactionStatusPendente, enums.TransactionStatusConfirmado},
		{enums.TransactionStatusConfirmado, enums.TransactionStatusCancelado},
		{enums.TransactionStatusCancelado, enums.TransactionStatusPendente},
		{enums.TransactionStatusCancelado, enums.TransactionStatusConfirmado},
	}

	for _, tr := range transitions {
		id := uuid.New()
		repo := &stubRepo{rows: []models.Transaction{{ID: id, Status: tr.from, Amount: decimal.NewFromInt(1)}}}
		svc, _ := NewService(repo, &memoryRecorder{})

		to := string(tr.to)
		updated, err := svc.Update(context.Background(), actorForTest(), id, UpdateTransactionInput{Status: &to})
		if err != nil {
			t.Fatalf("transition %s -> %s: %v", tr.from, tr.to, err)
		}
		if updated.Status != tr.to {
			t.Fatalf("transition %s -> %s: got %s", tr.from, tr.to, updated.Status)
		}
	}
}

func TestUpdateRejectsNonPositiveAmount(t *testing.T) {
	id := uuid.New()
	repo := &stubRepo{rows: []models.Transaction{{ID: id, Amount: decimal.NewFromInt(10)}}}
	svc, _ := NewService(repo, &memoryRecorder{})

	zero := decimal.Zero
	_, err := svc.Update(context.Background(), actorForTest(), id, UpdateTransactionInput{Amount: &zero})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.updated != nil {
		t.Fatal("nothing should be persisted on validation failure")
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := NewService(&stubRepo{}, &memoryRecorder{})

	desc := "x"
	_, err := svc.Update(context.Background(), actorForTest(), uuid.New(), UpdateTransactionInput{Description: &desc})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteAuditsSnapshot(t *testing.T) {
	id := uuid.New()
	repo := &stubRepo{
		rows:    []models.Transaction{{ID: id, Description: "Conserto do telhado", Amount: decimal.NewFromInt(300)}},
		deleted: 1,
	}
	rec := &memoryRecorder{}
	svc, _ := NewService(repo, rec)

	if err := svc.Delete(context.Background(), actorForTest(), id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(rec.entries) != 1 || rec.entries[0].Action != enums.AuditActionDelete {
		t.Fatalf("expected delete audit entry, got %+v", rec.entries)
	}
	details, ok := rec.entries[0].Details.(map[string]any)
	if !ok {
		t.Fatalf("expected map details, got %T", rec.entries[0].Details)
	}
	if details["descricao"] != "Conserto do telhado" {
		t.Fatalf("expected snapshot description in details, got %v", details)
	}
}

func TestDeleteNotFound(t *testing.T) {
	svc, _ := NewService(&stubRepo{}, &memoryRecorder{})

	err := svc.Delete(context.Background(), actorForTest(), uuid.New())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListBuildsBalanceAndPagination(t *testing.T) {
	repo := &stubRepo{
		rows:  []models.Transaction{{ID: uuid.New()}, {ID: uuid.New()}},
		total: 52,
		totals: Totals{
			Receipts: decimal.NewFromInt(100),
			Expenses: decimal.NewFromInt(40),
		},
	}
	rec := &memoryRecorder{}
	svc, _ := NewService(repo, rec)

	result, err := svc.List(context.Background(), actorForTest(), ListFilter{}, pagination.Params{Page: 2, Limit: 25})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !result.Balance.Receipts.Equal(decimal.NewFromInt(100)) ||
		!result.Balance.Expenses.Equal(decimal.NewFromInt(40)) ||
		!result.Balance.Balance.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("unexpected balance: %+v", result.Balance)
	}
	if result.Pagination.Total != 52 || result.Pagination.TotalPages != 3 {
		t.Fatalf("unexpected pagination: %+v", result.Pagination)
	}
	if len(rec.entries) != 1 || rec.entries[0].Action != enums.AuditActionView {
		t.Fatalf("expected view audit entry, got %+v", rec.entries)
	}
}
