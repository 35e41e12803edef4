package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/monarch/internal/api/middleware"
	"github.com/dvloznov/monarch/internal/domain"
	"github.com/dvloznov/monarch/internal/records"
	"github.com/dvloznov/monarch/internal/report"
)

// BudgetsHandler handles budget-related endpoints.
type BudgetsHandler struct {
	svc *records.BudgetService
	log zerolog.Logger
}

// NewBudgetsHandler creates a new budgets handler.
func NewBudgetsHandler(svc *records.BudgetService, log zerolog.Logger) *BudgetsHandler {
	return &BudgetsHandler{
		svc: svc,
		log: log,
	}
}

// BudgetView is a budget with its derived progress.
type BudgetView struct {
	domain.Budget
	Progress report.BudgetProgress `json:"progress"`
}

func budgetView(b domain.Budget) BudgetView {
	return BudgetView{Budget: b, Progress: report.ComputeBudgetProgress(b)}
}

// ListBudgets handles GET /api/budgets
func (h *BudgetsHandler) ListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets := h.svc.List(r.Context())
	views := make([]BudgetView, len(budgets))
	for i, b := range budgets {
		views[i] = budgetView(b)
	}
	middleware.WriteJSON(w, http.StatusOK, views)
}

// CreateBudget handles POST /api/budgets
func (h *BudgetsHandler) CreateBudget(w http.ResponseWriter, r *http.Request) {
	var in domain.BudgetInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := h.svc.Add(r.Context(), in)
	if err != nil {
		writeRecordError(w, h.log, err, "Failed to create budget")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, budgetView(b))
}

// UpdateBudget handles PUT /api/budgets/{id}
func (h *BudgetsHandler) UpdateBudget(w http.ResponseWriter, r *http.Request, id int) {
	var in domain.BudgetInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeRecordError(w, h.log, err, "Failed to update budget")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, budgetView(b))
}

// DeleteBudget handles DELETE /api/budgets/{id}
func (h *BudgetsHandler) DeleteBudget(w http.ResponseWriter, r *http.Request, id int) {
	if err := h.svc.Remove(r.Context(), id); err != nil {
		writeRecordError(w, h.log, err, "Failed to delete budget")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
