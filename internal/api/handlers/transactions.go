package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/dvloznov/monarch/internal/api/middleware"
	"github.com/dvloznov/monarch/internal/domain"
	"github.com/dvloznov/monarch/internal/records"
	"github.com/dvloznov/monarch/internal/report"
)

// TransactionsHandler handles transaction-related endpoints.
type TransactionsHandler struct {
	svc *records.TransactionService
	log zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(svc *records.TransactionService, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		svc: svc,
		log: log,
	}
}

// ListTransactions handles GET /api/transactions
//
// Query parameters: search, type (all|income|expense), category, start, end.
// All predicates are optional and combine conjunctively.
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	params := r.URL.Query()

	q := report.Query{
		Search:   params.Get("search"),
		Type:     report.TransactionType(params.Get("type")),
		Category: params.Get("category"),
	}

	if raw := params.Get("start"); raw != "" {
		start, err := civil.ParseDate(raw)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid start date, expected YYYY-MM-DD")
			return
		}
		q.Start = start
	}
	if raw := params.Get("end"); raw != "" {
		end, err := civil.ParseDate(raw)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid end date, expected YYYY-MM-DD")
			return
		}
		q.End = end
	}

	txs := report.Filter(h.svc.List(ctx), q)
	middleware.WriteJSON(w, http.StatusOK, txs)
}

// CreateTransaction handles POST /api/transactions
func (h *TransactionsHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in domain.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.svc.Add(r.Context(), in)
	if err != nil {
		writeRecordError(w, h.log, err, "Failed to create transaction")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, tx)
}

// UpdateTransaction handles PUT /api/transactions/{id}
func (h *TransactionsHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request, id int) {
	var in domain.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tx, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeRecordError(w, h.log, err, "Failed to update transaction")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, tx)
}

// DeleteTransaction handles DELETE /api/transactions/{id}
func (h *TransactionsHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request, id int) {
	if err := h.svc.Remove(r.Context(), id); err != nil {
		writeRecordError(w, h.log, err, "Failed to delete transaction")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeRecordError maps mutation service errors to HTTP responses.
func writeRecordError(w http.ResponseWriter, log zerolog.Logger, err error, fallback string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.WriteError(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, records.ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, err.Error())
	default:
		log.Error().Err(err).Msg(fallback)
		middleware.WriteError(w, http.StatusInternalServerError, fallback)
	}
}
