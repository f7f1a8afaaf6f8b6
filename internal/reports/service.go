package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/igreja360/tesouraria-backend/internal/audit"
	"github.com/igreja360/tesouraria-backend/pkg/enums"
	pkgerrors "github.com/igreja360/tesouraria-backend/pkg/errors"
)

// MonthLayout is the wire format of the mes query parameter.
const MonthLayout = "2006-01"

// Period is the resolved half-open date range a report covers.
type Period struct {
	Start string `json:"inicio"`
	End   string `json:"fim"`
}

// MonthlyReport is the category-grouped profit/loss summary for one month.
type MonthlyReport struct {
	Type          string          `json:"tipo"`
	Period        Period          `json:"periodo"`
	TotalReceipts decimal.Decimal `json:"total_receitas"`
	TotalExpenses decimal.Decimal `json:"total_despesas"`
	NetBalance    decimal.Decimal `json:"saldo"`
	Categories    []CategoryTotal `json:"categorias"`
	GeneratedAt   time.Time       `json:"gerado_em"`
}

// Service generates period reports. Pure read/aggregation; never mutates the
// ledger.
type Service interface {
	Monthly(ctx context.Context, actor audit.Actor, month string) (*MonthlyReport, error)
}

type service struct {
	repo     Repository
	recorder audit.Recorder
}

// NewService wires the reports service dependencies.
func NewService(repo Repository, recorder audit.Recorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	if recorder == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: repo, recorder: recorder}, nil
}

func (s *service) Monthly(ctx context.Context, actor audit.Actor, month string) (*MonthlyReport, error) {
	start, err := resolveMonth(month)
	if err != nil {
		return nil, err
	}
	end := start.AddDate(0, 1, 0)

	receipts, expenses, err := s.repo.Totals(ctx, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "report totals")
	}

	categories, err := s.repo.CategoryTotals(ctx, start, end)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "report category totals")
	}

	report := &MonthlyReport{
		Type: "mensal",
		Period: Period{
			Start: start.Format("2006-01-02"),
			End:   end.Format("2006-01-02"),
		},
		TotalReceipts: receipts,
		TotalExpenses: expenses,
		NetBalance:    receipts.Sub(expenses),
		Categories:    categories,
		GeneratedAt:   time.Now().UTC(),
	}

	s.recorder.Record(audit.Entry{
		Actor:       actor,
		Action:      enums.AuditActionReport,
		Description: "monthly report generated",
		Details: map[string]any{
			"periodo_inicio": report.Period.Start,
			"periodo_fim":    report.Period.End,
		},
	})

	return report, nil
}

// resolveMonth parses YYYY-MM, defaulting to the current month.
func resolveMonth(month string) (time.Time, error) {
	if month == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.Parse(MonthLayout, month)
	if err != nil {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid month, expected YYYY-MM").
			WithDetails(map[string]any{"mes": month})
	}
	return time.Date(parsed.Year(), parsed.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}
