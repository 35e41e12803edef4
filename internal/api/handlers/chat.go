package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dvloznov/monarch/internal/api/middleware"
	"github.com/dvloznov/monarch/internal/assistant"
	"github.com/dvloznov/monarch/internal/digest"
	"github.com/dvloznov/monarch/internal/records"
)

// ChatHandler handles the AI assistant endpoint. Each request snapshots the
// current collections so the assistant always sees fresh data.
type ChatHandler struct {
	gateway *assistant.Gateway
	txs     *records.TransactionService
	budgets *records.BudgetService
	goals   *records.GoalService
	log     zerolog.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(gateway *assistant.Gateway, txs *records.TransactionService, budgets *records.BudgetService, goals *records.GoalService, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		gateway: gateway,
		txs:     txs,
		budgets: budgets,
		goals:   goals,
		log:     log,
	}
}

// Chat handles POST /api/chat
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Message is required")
		return
	}

	ctx := r.Context()
	d := digest.Build(h.txs.List(ctx), h.budgets.List(ctx), h.goals.List(ctx))
	reply := h.gateway.Ask(ctx, req.Message, digest.FormatForPrompt(d))

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
