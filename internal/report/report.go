// Package report computes derived views from raw record collections. All
// functions are pure: they take an in-memory snapshot and return fresh
// values, so the dashboard summary and the chat digest share one set of
// arithmetic.
package report

import (
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/monarch/internal/domain"
)

// Totals are the headline figures for a transaction collection. Expenses
// carry the absolute value of the negative amounts, so both Income and
// Expenses are non-negative and NetWorth = Income - Expenses.
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	NetWorth decimal.Decimal `json:"netWorth"`
}

// ComputeTotals computes the headline figures. An empty collection yields
// all zeros.
func ComputeTotals(txs []domain.Transaction) Totals {
	income := decimal.Zero
	expenses := decimal.Zero
	for _, t := range txs {
		if t.Amount.Sign() > 0 {
			income = income.Add(t.Amount)
		} else if t.Amount.Sign() < 0 {
			expenses = expenses.Add(t.Amount.Abs())
		}
	}
	return Totals{
		Income:   income,
		Expenses: expenses,
		NetWorth: income.Sub(expenses),
	}
}

// Recent returns the n most recent transactions, sorted by date descending.
// Transactions on the same date keep their original relative order; no
// secondary sort key is applied.
func Recent(txs []domain.Transaction, n int) []domain.Transaction {
	sorted := make([]domain.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// DateGroup is one day's transactions with a human-readable label and the
// signed sum of the day's amounts.
type DateGroup struct {
	Date         civil.Date           `json:"date"`
	Label        string               `json:"label"`
	Transactions []domain.Transaction `json:"transactions"`
	Subtotal     decimal.Decimal      `json:"subtotal"`
}

// GroupByDate partitions transactions into per-day groups, preserving the
// first-seen order of dates in the input. Callers normally pass input that
// is already sorted by recency.
func GroupByDate(txs []domain.Transaction) []DateGroup {
	var groups []DateGroup
	index := make(map[civil.Date]int)

	for _, t := range txs {
		i, seen := index[t.Date]
		if !seen {
			i = len(groups)
			index[t.Date] = i
			groups = append(groups, DateGroup{
				Date:     t.Date,
				Label:    dateLabel(t.Date),
				Subtotal: decimal.Zero,
			})
		}
		groups[i].Transactions = append(groups[i].Transactions, t)
		groups[i].Subtotal = groups[i].Subtotal.Add(t.Amount)
	}
	return groups
}

// dateLabel renders a date as e.g. "November 2, 2025". The rendering is
// fixed to English month names so grouped output is deterministic.
func dateLabel(d civil.Date) string {
	return d.In(time.UTC).Format("January 2, 2006")
}

// TransactionType selects transactions by the sign of their amount.
type TransactionType string

const (
	TypeAll     TransactionType = "all"
	TypeIncome  TransactionType = "income"  // amount > 0
	TypeExpense TransactionType = "expense" // amount <= 0
)

// Query is a conjunction of transaction filter predicates. Zero values
// leave the corresponding predicate inactive.
type Query struct {
	Search   string          // case-insensitive substring of merchant, category, or absolute amount
	Type     TransactionType // empty means all
	Category string          // empty or "all" means any category
	Start    civil.Date      // inclusive lower date bound; zero means unbounded
	End      civil.Date      // inclusive upper date bound (whole day); zero means unbounded
}

// Filter returns the transactions matching every active predicate of q.
// The result is never longer than the input.
func Filter(txs []domain.Transaction, q Query) []domain.Transaction {
	result := make([]domain.Transaction, 0, len(txs))
	for _, t := range txs {
		if matches(t, q) {
			result = append(result, t)
		}
	}
	return result
}

func matches(t domain.Transaction, q Query) bool {
	if search := strings.TrimSpace(q.Search); search != "" {
		needle := strings.ToLower(search)
		if !strings.Contains(strings.ToLower(t.Merchant), needle) &&
			!strings.Contains(strings.ToLower(t.Category), needle) &&
			!strings.Contains(t.Amount.Abs().String(), needle) {
			return false
		}
	}
	switch q.Type {
	case TypeIncome:
		if t.Amount.Sign() <= 0 {
			return false
		}
	case TypeExpense:
		if t.Amount.Sign() > 0 {
			return false
		}
	}
	if q.Category != "" && q.Category != "all" && t.Category != q.Category {
		return false
	}
	if q.Start.IsValid() && t.Date.Before(q.Start) {
		return false
	}
	if q.End.IsValid() && t.Date.After(q.End) {
		return false
	}
	return true
}

// BudgetProgress is the derived progress view of a budget. Percentage is
// the raw rounded value used in digests; ClampedPercentage is capped at 100
// for progress-bar display.
type BudgetProgress struct {
	Percentage        int             `json:"percentage"`
	ClampedPercentage int             `json:"clampedPercentage"`
	Remaining         decimal.Decimal `json:"remaining"`
	OverBudget        bool            `json:"overBudget"`
}

// ComputeBudgetProgress derives the progress view of b. A zero planned
// amount yields 0%, never a division error; input validation independently
// rejects non-positive amounts.
func ComputeBudgetProgress(b domain.Budget) BudgetProgress {
	pct := percentage(b.Spent, b.Amount)
	clamped := pct
	if clamped > 100 {
		clamped = 100
	}
	return BudgetProgress{
		Percentage:        pct,
		ClampedPercentage: clamped,
		Remaining:         remaining(b.Amount, b.Spent),
		OverBudget:        b.Spent.GreaterThan(b.Amount),
	}
}

// GoalProgress is the derived progress view of a savings goal.
type GoalProgress struct {
	Percentage int             `json:"percentage"`
	Remaining  decimal.Decimal `json:"remaining"`
	Completed  bool            `json:"completed"`
}

// ComputeGoalProgress derives the progress view of g. A zero target yields
// 0%, matching the budget policy.
func ComputeGoalProgress(g domain.Goal) GoalProgress {
	rem := remaining(g.Target, g.Saved)
	return GoalProgress{
		Percentage: percentage(g.Saved, g.Target),
		Remaining:  rem,
		Completed:  rem.IsZero(),
	}
}

// percentage returns round(part/whole * 100), or 0 when whole is zero.
func percentage(part, whole decimal.Decimal) int {
	if whole.IsZero() {
		return 0
	}
	pct := part.Div(whole).Mul(decimal.NewFromInt(100)).Round(0)
	return int(pct.IntPart())
}

// remaining returns max(0, total - used).
func remaining(total, used decimal.Decimal) decimal.Decimal {
	rem := total.Sub(used)
	if rem.Sign() < 0 {
		return decimal.Zero
	}
	return rem
}
