package report

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/monarch/internal/domain"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func day(t *testing.T, s string) civil.Date {
	t.Helper()
	d, err := civil.ParseDate(s)
	if err != nil {
		t.Fatalf("bad date %q: %v", s, err)
	}
	return d
}

func tx(t *testing.T, id int, merchant, category, amount, date string) domain.Transaction {
	t.Helper()
	return domain.Transaction{
		ID:       id,
		Merchant: merchant,
		Category: category,
		Amount:   dec(t, amount),
		Date:     day(t, date),
	}
}

func TestComputeTotals(t *testing.T) {
	txs := []domain.Transaction{
		tx(t, 1, "Whole Foods", "Groceries", "-86.45", "2025-11-02"),
		tx(t, 2, "Payroll", "Income", "2950.00", "2025-11-01"),
	}

	totals := ComputeTotals(txs)
	if !totals.Income.Equal(dec(t, "2950.00")) {
		t.Errorf("Income = %s, want 2950.00", totals.Income)
	}
	if !totals.Expenses.Equal(dec(t, "86.45")) {
		t.Errorf("Expenses = %s, want 86.45", totals.Expenses)
	}
	if !totals.NetWorth.Equal(dec(t, "2863.55")) {
		t.Errorf("NetWorth = %s, want 2863.55", totals.NetWorth)
	}
}

func TestComputeTotals_Identity(t *testing.T) {
	collections := [][]domain.Transaction{
		nil,
		{tx(t, 1, "Payroll", "Income", "100", "2025-01-01")},
		domain.SeedTransactions(),
		{
			tx(t, 1, "A", "Other", "-10.10", "2025-01-01"),
			tx(t, 2, "B", "Other", "-0.90", "2025-01-02"),
			tx(t, 3, "C", "Income", "0", "2025-01-03"),
		},
	}

	for _, txs := range collections {
		totals := ComputeTotals(txs)
		if totals.Income.Sign() < 0 || totals.Expenses.Sign() < 0 {
			t.Errorf("Income/Expenses must be non-negative, got %s / %s", totals.Income, totals.Expenses)
		}
		if !totals.NetWorth.Equal(totals.Income.Sub(totals.Expenses)) {
			t.Errorf("NetWorth = %s, want income - expenses = %s", totals.NetWorth, totals.Income.Sub(totals.Expenses))
		}
	}
}

func TestComputeTotals_Empty(t *testing.T) {
	totals := ComputeTotals(nil)
	if !totals.Income.IsZero() || !totals.Expenses.IsZero() || !totals.NetWorth.IsZero() {
		t.Errorf("Empty collection totals = %+v, want all zero", totals)
	}
}

func TestRecent(t *testing.T) {
	txs := []domain.Transaction{
		tx(t, 1, "Old", "Other", "-1", "2025-01-01"),
		tx(t, 2, "SameDayFirst", "Other", "-1", "2025-06-01"),
		tx(t, 3, "Newest", "Other", "-1", "2025-07-01"),
		tx(t, 4, "SameDaySecond", "Other", "-1", "2025-06-01"),
	}

	got := Recent(txs, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[0].Merchant != "Newest" {
		t.Errorf("got[0] = %q, want Newest", got[0].Merchant)
	}
	// Date ties keep the original relative order.
	if got[1].Merchant != "SameDayFirst" || got[2].Merchant != "SameDaySecond" {
		t.Errorf("tie order = %q, %q; want SameDayFirst, SameDaySecond", got[1].Merchant, got[2].Merchant)
	}

	// n larger than the collection returns everything.
	if all := Recent(txs, 10); len(all) != 4 {
		t.Errorf("Recent(txs, 10) len = %d, want 4", len(all))
	}

	// The input order must not be disturbed.
	if txs[0].Merchant != "Old" {
		t.Error("Recent must not mutate its input")
	}
}

func TestGroupByDate(t *testing.T) {
	txs := []domain.Transaction{
		tx(t, 1, "Whole Foods", "Groceries", "-86.45", "2025-11-02"),
		tx(t, 2, "Starbucks", "Dining", "-5.75", "2025-11-02"),
		tx(t, 3, "Payroll", "Income", "2950.00", "2025-11-01"),
	}

	groups := GroupByDate(txs)
	if len(groups) != 2 {
		t.Fatalf("len = %d, want 2", len(groups))
	}
	if groups[0].Label != "November 2, 2025" {
		t.Errorf("label = %q, want November 2, 2025", groups[0].Label)
	}
	if !groups[0].Subtotal.Equal(dec(t, "-92.20")) {
		t.Errorf("subtotal = %s, want -92.20 (sign preserved)", groups[0].Subtotal)
	}
	if len(groups[0].Transactions) != 2 {
		t.Errorf("group size = %d, want 2", len(groups[0].Transactions))
	}
	if !groups[1].Subtotal.Equal(dec(t, "2950.00")) {
		t.Errorf("subtotal = %s, want 2950.00", groups[1].Subtotal)
	}
}

func TestFilter(t *testing.T) {
	txs := []domain.Transaction{
		tx(t, 1, "Whole Foods", "Groceries", "-86.45", "2025-11-02"),
		tx(t, 2, "Starbucks", "Dining", "-5.75", "2025-11-02"),
		tx(t, 3, "Payroll", "Income", "2950.00", "2025-11-01"),
		tx(t, 4, "Lyft", "Transport", "-18.20", "2025-10-31"),
	}

	tests := []struct {
		name    string
		query   Query
		wantIDs []int
	}{
		{"no predicates", Query{}, []int{1, 2, 3, 4}},
		{"search merchant case-insensitive", Query{Search: "whole"}, []int{1}},
		{"search category", Query{Search: "dining"}, []int{2}},
		{"search absolute amount", Query{Search: "86.45"}, []int{1}},
		{"search no match", Query{Search: "zzz"}, nil},
		{"income type", Query{Type: TypeIncome}, []int{3}},
		{"expense type", Query{Type: TypeExpense}, []int{1, 2, 4}},
		{"category exact", Query{Category: "Transport"}, []int{4}},
		{"category all", Query{Category: "all"}, []int{1, 2, 3, 4}},
		{"start bound inclusive", Query{Start: day(t, "2025-11-01")}, []int{1, 2, 3}},
		{"end bound inclusive whole day", Query{End: day(t, "2025-11-01")}, []int{3, 4}},
		{"date range", Query{Start: day(t, "2025-11-01"), End: day(t, "2025-11-01")}, []int{3}},
		{"conjunction", Query{Search: "s", Type: TypeExpense, Start: day(t, "2025-11-02")}, []int{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(txs, tt.query)
			if len(got) > len(txs) {
				t.Fatalf("filter widened the collection: %d > %d", len(got), len(txs))
			}
			var ids []int
			for _, tr := range got {
				ids = append(ids, tr.ID)
			}
			if len(ids) != len(tt.wantIDs) {
				t.Fatalf("ids = %v, want %v", ids, tt.wantIDs)
			}
			for i := range ids {
				if ids[i] != tt.wantIDs[i] {
					t.Fatalf("ids = %v, want %v", ids, tt.wantIDs)
				}
			}
		})
	}
}

func TestComputeBudgetProgress(t *testing.T) {
	tests := []struct {
		name           string
		amount         string
		spent          string
		wantPercentage int
		wantRemaining  string
		wantOver       bool
	}{
		{"under budget", "600", "420", 70, "180", false},
		{"over budget", "300", "365", 122, "0", true},
		{"exactly spent", "200", "200", 100, "0", false},
		{"nothing spent", "500", "0", 0, "500", false},
		{"zero amount boundary", "0", "50", 0, "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := domain.Budget{Amount: dec(t, tt.amount), Spent: dec(t, tt.spent)}
			got := ComputeBudgetProgress(b)
			if got.Percentage != tt.wantPercentage {
				t.Errorf("Percentage = %d, want %d", got.Percentage, tt.wantPercentage)
			}
			if !got.Remaining.Equal(dec(t, tt.wantRemaining)) {
				t.Errorf("Remaining = %s, want %s", got.Remaining, tt.wantRemaining)
			}
			if got.OverBudget != tt.wantOver {
				t.Errorf("OverBudget = %v, want %v", got.OverBudget, tt.wantOver)
			}
			if got.ClampedPercentage > 100 {
				t.Errorf("ClampedPercentage = %d, must not exceed 100", got.ClampedPercentage)
			}
		})
	}
}

func TestComputeBudgetProgress_Clamping(t *testing.T) {
	b := domain.Budget{Amount: dec(t, "300"), Spent: dec(t, "365")}
	got := ComputeBudgetProgress(b)
	if got.Percentage != 122 || got.ClampedPercentage != 100 {
		t.Errorf("raw/clamped = %d/%d, want 122/100", got.Percentage, got.ClampedPercentage)
	}
}

func TestComputeGoalProgress(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		saved          string
		wantPercentage int
		wantRemaining  string
		wantCompleted  bool
	}{
		{"in progress", "10000", "6200", 62, "3800", false},
		{"completed", "2200", "2200", 100, "0", true},
		{"oversaved", "1000", "1200", 120, "0", true},
		{"nothing saved", "500", "0", 0, "500", false},
		{"zero target boundary", "0", "0", 0, "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := domain.Goal{Target: dec(t, tt.target), Saved: dec(t, tt.saved)}
			got := ComputeGoalProgress(g)
			if got.Percentage != tt.wantPercentage {
				t.Errorf("Percentage = %d, want %d", got.Percentage, tt.wantPercentage)
			}
			if !got.Remaining.Equal(dec(t, tt.wantRemaining)) {
				t.Errorf("Remaining = %s, want %s", got.Remaining, tt.wantRemaining)
			}
			if got.Completed != tt.wantCompleted {
				t.Errorf("Completed = %v, want %v", got.Completed, tt.wantCompleted)
			}
		})
	}
}
