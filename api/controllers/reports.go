package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/igreja360/tesouraria-backend/api/middleware"
	"github.com/igreja360/tesouraria-backend/api/responses"
	"github.com/igreja360/tesouraria-backend/internal/reports"
	pkgerrors "github.com/igreja360/tesouraria-backend/pkg/errors"
	"github.com/igreja360/tesouraria-backend/pkg/logger"
)

// MonthlyReport generates the period report. Only the mensal report type
// exists today; an absent mes parameter resolves to the current month.
func MonthlyReport(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reports service unavailable"))
			return
		}

		reportType := strings.TrimSpace(r.URL.Query().Get("tipo"))
		if reportType == "" {
			reportType = "mensal"
		}
		if reportType != "mensal" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "unsupported report type").
				WithDetails(map[string]any{"tipo": reportType}))
			return
		}

		month := strings.TrimSpace(r.URL.Query().Get("mes"))

		report, err := svc.Monthly(r.Context(), middleware.ActorFromContext(r.Context()), month)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func validateDate(value, field string) error {
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid date filter").
			WithDetails(map[string]any{"field": field})
	}
	return nil
}
