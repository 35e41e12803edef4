package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/dvloznov/monarch/internal/api/middleware"
	"github.com/dvloznov/monarch/internal/records"
	"github.com/dvloznov/monarch/internal/report"
)

// RecentLimit is how many transactions the dashboard summary shows.
const RecentLimit = 5

// SummaryHandler serves the aggregated dashboard view.
type SummaryHandler struct {
	txs     *records.TransactionService
	budgets *records.BudgetService
	goals   *records.GoalService
	log     zerolog.Logger
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(txs *records.TransactionService, budgets *records.BudgetService, goals *records.GoalService, log zerolog.Logger) *SummaryHandler {
	return &SummaryHandler{
		txs:     txs,
		budgets: budgets,
		goals:   goals,
		log:     log,
	}
}

// Summary is the dashboard headline view: totals, recent activity grouped
// by day, and every budget and goal with derived progress.
type Summary struct {
	Totals  report.Totals      `json:"totals"`
	Recent  []report.DateGroup `json:"recent"`
	Budgets []BudgetView       `json:"budgets"`
	Goals   []GoalView         `json:"goals"`
}

// GetSummary handles GET /api/summary
func (h *SummaryHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	txs := h.txs.List(ctx)
	budgets := h.budgets.List(ctx)
	goals := h.goals.List(ctx)

	budgetViews := make([]BudgetView, len(budgets))
	for i, b := range budgets {
		budgetViews[i] = budgetView(b)
	}
	goalViews := make([]GoalView, len(goals))
	for i, g := range goals {
		goalViews[i] = goalView(g)
	}

	middleware.WriteJSON(w, http.StatusOK, Summary{
		Totals:  report.ComputeTotals(txs),
		Recent:  report.GroupByDate(report.Recent(txs, RecentLimit)),
		Budgets: budgetViews,
		Goals:   goalViews,
	})
}
