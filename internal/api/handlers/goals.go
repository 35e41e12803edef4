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

// GoalsHandler handles savings goal endpoints.
type GoalsHandler struct {
	svc *records.GoalService
	log zerolog.Logger
}

// NewGoalsHandler creates a new goals handler.
func NewGoalsHandler(svc *records.GoalService, log zerolog.Logger) *GoalsHandler {
	return &GoalsHandler{
		svc: svc,
		log: log,
	}
}

// GoalView is a goal with its derived progress.
type GoalView struct {
	domain.Goal
	Progress report.GoalProgress `json:"progress"`
}

func goalView(g domain.Goal) GoalView {
	return GoalView{Goal: g, Progress: report.ComputeGoalProgress(g)}
}

// ListGoals handles GET /api/goals
func (h *GoalsHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	goals := h.svc.List(r.Context())
	views := make([]GoalView, len(goals))
	for i, g := range goals {
		views[i] = goalView(g)
	}
	middleware.WriteJSON(w, http.StatusOK, views)
}

// CreateGoal handles POST /api/goals
func (h *GoalsHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var in domain.GoalInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	g, err := h.svc.Add(r.Context(), in)
	if err != nil {
		writeRecordError(w, h.log, err, "Failed to create goal")
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, goalView(g))
}

// UpdateGoal handles PUT /api/goals/{id}
func (h *GoalsHandler) UpdateGoal(w http.ResponseWriter, r *http.Request, id int) {
	var in domain.GoalInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	g, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		writeRecordError(w, h.log, err, "Failed to update goal")
		return
	}
	middleware.WriteJSON(w, http.StatusOK, goalView(g))
}

// DeleteGoal handles DELETE /api/goals/{id}
func (h *GoalsHandler) DeleteGoal(w http.ResponseWriter, r *http.Request, id int) {
	if err := h.svc.Remove(r.Context(), id); err != nil {
		writeRecordError(w, h.log, err, "Failed to delete goal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
