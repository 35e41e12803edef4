package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/dvloznov/monarch/internal/assistant"
	"github.com/dvloznov/monarch/internal/records"
	"github.com/dvloznov/monarch/internal/store"
)

func newServices(t *testing.T) (*records.TransactionService, *records.BudgetService, *records.GoalService) {
	t.Helper()
	ctx := context.Background()
	st := store.New(store.NewMemoryKV(), store.DefaultNamespace(), zerolog.Nop())
	return records.NewTransactionService(ctx, st, zerolog.Nop()),
		records.NewBudgetService(ctx, st, zerolog.Nop()),
		records.NewGoalService(ctx, st, zerolog.Nop())
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func TestTransactionsHandler_List(t *testing.T) {
	txs, _, _ := newServices(t)
	h := NewTransactionsHandler(txs, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	rec := httptest.NewRecorder()
	h.ListTransactions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}
	var got []map[string]interface{}
	decodeJSON(t, rec, &got)
	if len(got) != 4 {
		t.Errorf("List returned %d transactions, want 4 seeded", len(got))
	}
}

func TestTransactionsHandler_ListFiltered(t *testing.T) {
	txs, _, _ := newServices(t)
	h := NewTransactionsHandler(txs, zerolog.Nop())

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"by search", "?search=whole", 1},
		{"by type income", "?type=income", 1},
		{"by type expense", "?type=expense", 3},
		{"by category", "?category=Groceries", 1},
		{"by date range", "?start=2025-11-01&end=2025-11-02", 3},
		{"conjunction", "?type=expense&start=2025-11-02", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/transactions"+tt.query, nil)
			rec := httptest.NewRecorder()
			h.ListTransactions(rec, req)

			var got []map[string]interface{}
			decodeJSON(t, rec, &got)
			if len(got) != tt.want {
				t.Errorf("Filter %s returned %d transactions, want %d", tt.query, len(got), tt.want)
			}
		})
	}
}

func TestTransactionsHandler_ListRejectsBadDate(t *testing.T) {
	txs, _, _ := newServices(t)
	h := NewTransactionsHandler(txs, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/transactions?start=yesterday", nil)
	rec := httptest.NewRecorder()
	h.ListTransactions(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400 for malformed date", rec.Code)
	}
}

func TestTransactionsHandler_Create(t *testing.T) {
	txs, _, _ := newServices(t)
	h := NewTransactionsHandler(txs, zerolog.Nop())

	body := `{"merchant":"Trader Joe's","category":"Groceries","amount":"-42.17","date":"2025-11-03"}`
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateTransaction(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var got map[string]interface{}
	decodeJSON(t, rec, &got)
	if got["merchant"] != "Trader Joe's" {
		t.Errorf("Created merchant = %v, want Trader Joe's", got["merchant"])
	}
}

func TestTransactionsHandler_CreateInvalid(t *testing.T) {
	txs, _, _ := newServices(t)
	h := NewTransactionsHandler(txs, zerolog.Nop())

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"merchant":`},
		{"missing merchant", `{"merchant":"","category":"Other","amount":"-1","date":"2025-11-03"}`},
		{"missing date", `{"merchant":"X","category":"Other","amount":"-1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.CreateTransaction(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("Status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestTransactionsHandler_UpdateNotFound(t *testing.T) {
	txs, _, _ := newServices(t)
	h := NewTransactionsHandler(txs, zerolog.Nop())

	body := `{"merchant":"X","category":"Other","amount":"-1","date":"2025-11-03"}`
	req := httptest.NewRequest(http.MethodPut, "/api/transactions/9999", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.UpdateTransaction(rec, req, 9999)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", rec.Code)
	}
}

func TestTransactionsHandler_Delete(t *testing.T) {
	txs, _, _ := newServices(t)
	h := NewTransactionsHandler(txs, zerolog.Nop())

	target := txs.List(context.Background())[0]
	req := httptest.NewRequest(http.MethodDelete, "/api/transactions/1", nil)
	rec := httptest.NewRecorder()
	h.DeleteTransaction(rec, req, target.ID)

	if rec.Code != http.StatusNoContent {
		t.Errorf("Status = %d, want 204", rec.Code)
	}
}

func TestBudgetsHandler_ListIncludesProgress(t *testing.T) {
	_, budgets, _ := newServices(t)
	h := NewBudgetsHandler(budgets, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/budgets", nil)
	rec := httptest.NewRecorder()
	h.ListBudgets(rec, req)

	var got []struct {
		Name     string `json:"name"`
		Progress struct {
			Percentage int    `json:"percentage"`
			Remaining  string `json:"remaining"`
			OverBudget bool   `json:"overBudget"`
		} `json:"progress"`
	}
	decodeJSON(t, rec, &got)

	if len(got) != 4 {
		t.Fatalf("List returned %d budgets, want 4 seeded", len(got))
	}
	// Seeded Groceries budget: 420 spent of 600.
	if got[0].Name != "Groceries" || got[0].Progress.Percentage != 70 {
		t.Errorf("Groceries progress = %+v, want 70%%", got[0])
	}
	if got[0].Progress.Remaining != "180" || got[0].Progress.OverBudget {
		t.Errorf("Groceries remaining = %s overBudget = %v, want 180 and false",
			got[0].Progress.Remaining, got[0].Progress.OverBudget)
	}
	// Seeded Shopping budget: 365 spent of 400, under budget.
	if got[3].Name != "Shopping" || got[3].Progress.OverBudget {
		t.Errorf("Shopping = %+v, want under budget", got[3])
	}
}

func TestBudgetsHandler_CreateRejectsZeroAmount(t *testing.T) {
	_, budgets, _ := newServices(t)
	h := NewBudgetsHandler(budgets, zerolog.Nop())

	body := `{"name":"Bad","amount":"0","spent":"0","color":"blue"}`
	req := httptest.NewRequest(http.MethodPost, "/api/budgets", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateBudget(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", rec.Code)
	}
}

func TestGoalsHandler_CreateAndProgress(t *testing.T) {
	_, _, goals := newServices(t)
	h := NewGoalsHandler(goals, zerolog.Nop())

	body := `{"name":"Bike","target":"800","saved":"800","due":"2026-03-01"}`
	req := httptest.NewRequest(http.MethodPost, "/api/goals", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateGoal(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("Status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	var got struct {
		Progress struct {
			Percentage int  `json:"percentage"`
			Completed  bool `json:"completed"`
		} `json:"progress"`
	}
	decodeJSON(t, rec, &got)
	if got.Progress.Percentage != 100 || !got.Progress.Completed {
		t.Errorf("Progress = %+v, want 100%% completed", got.Progress)
	}
}

func TestSummaryHandler(t *testing.T) {
	txs, budgets, goals := newServices(t)
	h := NewSummaryHandler(txs, budgets, goals, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	rec := httptest.NewRecorder()
	h.GetSummary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}
	var got struct {
		Totals struct {
			Income   string `json:"income"`
			Expenses string `json:"expenses"`
			NetWorth string `json:"netWorth"`
		} `json:"totals"`
		Recent  []json.RawMessage `json:"recent"`
		Budgets []json.RawMessage `json:"budgets"`
		Goals   []json.RawMessage `json:"goals"`
	}
	decodeJSON(t, rec, &got)

	if got.Totals.Income != "2950" {
		t.Errorf("Income = %s, want 2950", got.Totals.Income)
	}
	if got.Totals.Expenses != "110.4" {
		t.Errorf("Expenses = %s, want 110.4", got.Totals.Expenses)
	}
	if got.Totals.NetWorth != "2839.6" {
		t.Errorf("NetWorth = %s, want 2839.6", got.Totals.NetWorth)
	}
	if len(got.Recent) != 3 {
		t.Errorf("Recent groups = %d, want 3 distinct days", len(got.Recent))
	}
	if len(got.Budgets) != 4 || len(got.Goals) != 3 {
		t.Errorf("Budgets/Goals = %d/%d, want 4/3 seeded", len(got.Budgets), len(got.Goals))
	}
}

func TestProfileHandler_RoundTrip(t *testing.T) {
	st := store.New(store.NewMemoryKV(), store.DefaultNamespace(), zerolog.Nop())
	h := NewProfileHandler(
		records.NewProfileService(st, nil, zerolog.Nop()),
		records.NewThemeService(st, zerolog.Nop()),
		zerolog.Nop(),
	)

	body := `{"firstName":"Ada","lastName":"Lovelace"}`
	req := httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.UpdateProfile(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Update status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rec = httptest.NewRecorder()
	h.GetProfile(rec, req)

	var got map[string]string
	decodeJSON(t, rec, &got)
	if got["firstName"] != "Ada" || got["lastName"] != "Lovelace" {
		t.Errorf("Profile = %v, want saved names", got)
	}
}

func TestProfileHandler_Theme(t *testing.T) {
	st := store.New(store.NewMemoryKV(), store.DefaultNamespace(), zerolog.Nop())
	h := NewProfileHandler(
		records.NewProfileService(st, nil, zerolog.Nop()),
		records.NewThemeService(st, zerolog.Nop()),
		zerolog.Nop(),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/theme", nil)
	rec := httptest.NewRecorder()
	h.GetTheme(rec, req)
	var got map[string]string
	decodeJSON(t, rec, &got)
	if got["theme"] != "system" {
		t.Errorf("Default theme = %v, want system", got["theme"])
	}

	req = httptest.NewRequest(http.MethodPut, "/api/theme", strings.NewReader(`{"theme":"dark"}`))
	rec = httptest.NewRecorder()
	h.UpdateTheme(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Update status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/theme", strings.NewReader(`{"theme":"neon"}`))
	rec = httptest.NewRecorder()
	h.UpdateTheme(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Invalid theme status = %d, want 400", rec.Code)
	}
}

type fakeGenerator struct {
	prompt string
	reply  string
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.reply, nil
}

func TestChatHandler(t *testing.T) {
	txs, budgets, goals := newServices(t)
	gen := &fakeGenerator{reply: "You spent $86.45 on groceries."}
	h := NewChatHandler(assistant.NewGateway(gen, zerolog.Nop()), txs, budgets, goals, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"How much did I spend on groceries?"}`))
	rec := httptest.NewRecorder()
	h.Chat(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var got map[string]string
	decodeJSON(t, rec, &got)
	if got["reply"] != "You spent $86.45 on groceries." {
		t.Errorf("Reply = %q, want the generator's text verbatim", got["reply"])
	}
	if !strings.Contains(gen.prompt, "Financial Summary:") {
		t.Error("Prompt must embed the financial digest")
	}
	if !strings.Contains(gen.prompt, "How much did I spend on groceries?") {
		t.Error("Prompt must embed the user's question")
	}
}

func TestChatHandler_EmptyMessage(t *testing.T) {
	txs, budgets, goals := newServices(t)
	h := NewChatHandler(assistant.NewGateway(nil, zerolog.Nop()), txs, budgets, goals, zerolog.Nop())

	for _, body := range []string{`{"message":""}`, `{"message":"   "}`, `{}`} {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Chat(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Body %s status = %d, want 400", body, rec.Code)
		}
	}
}

func TestChatHandler_NoCredential(t *testing.T) {
	txs, budgets, goals := newServices(t)
	h := NewChatHandler(assistant.NewGateway(nil, zerolog.Nop()), txs, budgets, goals, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hello"}`))
	rec := httptest.NewRecorder()
	h.Chat(rec, req)

	var got map[string]string
	decodeJSON(t, rec, &got)
	if got["reply"] != assistant.ConfigApology {
		t.Errorf("Reply = %q, want the configuration notice", got["reply"])
	}
}
