package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/igreja360/tesouraria-backend/api/middleware"
	"github.com/igreja360/tesouraria-backend/api/responses"
	"github.com/igreja360/tesouraria-backend/api/validators"
	"github.com/igreja360/tesouraria-backend/internal/transactions"
	"github.com/igreja360/tesouraria-backend/pkg/enums"
	pkgerrors "github.com/igreja360/tesouraria-backend/pkg/errors"
	"github.com/igreja360/tesouraria-backend/pkg/logger"
	"github.com/igreja360/tesouraria-backend/pkg/pagination"
)

// ListTransactions returns a filtered page of ledger entries with the balance
// computed under the same filter.
func ListTransactions(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "transactions service unavailable"))
			return
		}

		filter, err := filterFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), middleware.ActorFromContext(r.Context()), filter, pagination.Params{Page: page, Limit: limit})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, result)
	}
}

// GetTransaction fetches one ledger entry by id.
func GetTransaction(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := transactionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tx, err := svc.Get(r.Context(), middleware.ActorFromContext(r.Context()), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tx)
	}
}

// CreateTransaction records a new ledger entry for the authenticated actor.
func CreateTransaction(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input transactions.CreateTransactionInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tx, err := svc.Create(r.Context(), middleware.ActorFromContext(r.Context()), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, tx)
	}
}

// UpdateTransaction partially updates the mutable fields of a ledger entry.
func UpdateTransaction(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := transactionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var input transactions.UpdateTransactionInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tx, err := svc.Update(r.Context(), middleware.ActorFromContext(r.Context()), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tx)
	}
}

// DeleteTransaction permanently removes a ledger entry.
func DeleteTransaction(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := transactionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), middleware.ActorFromContext(r.Context()), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "lancamento removido"})
	}
}

func transactionID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid transaction id")
	}
	return id, nil
}

func filterFromQuery(r *http.Request) (transactions.ListFilter, error) {
	var filter transactions.ListFilter
	q := r.URL.Query()

	if raw := strings.TrimSpace(q.Get("tipo")); raw != "" {
		kind, err := enums.ParseTransactionKind(raw)
		if err != nil {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid tipo filter").
				WithDetails(map[string]any{"tipo": raw})
		}
		filter.Kind = kind
	}
	if raw := strings.TrimSpace(q.Get("status")); raw != "" {
		status, err := enums.ParseTransactionStatus(raw)
		if err != nil {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter").
				WithDetails(map[string]any{"status": raw})
		}
		filter.Status = status
	}
	if raw := strings.TrimSpace(q.Get("categoria_id")); raw != "" {
		if _, err := uuid.Parse(raw); err != nil {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid categoria_id filter")
		}
		filter.CategoryID = raw
	}
	if raw := strings.TrimSpace(q.Get("data_inicio")); raw != "" {
		if err := validateDate(raw, "data_inicio"); err != nil {
			return filter, err
		}
		filter.DateFrom = raw
	}
	if raw := strings.TrimSpace(q.Get("data_fim")); raw != "" {
		if err := validateDate(raw, "data_fim"); err != nil {
			return filter, err
		}
		filter.DateTo = raw
	}
	return filter, nil
}
