// Package digest turns the current record collections into a bounded
// plain-text summary of the user's finances, used as context for the AI
// assistant. Given identical inputs the output is byte-for-byte identical.
package digest

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/dvloznov/monarch/internal/domain"
	"github.com/dvloznov/monarch/internal/report"
)

// RecentTransactionLimit bounds how many transactions the digest carries.
const RecentTransactionLimit = 10

// BudgetSummary is one budget with its derived progress, flattened for
// rendering.
type BudgetSummary struct {
	Name       string          `json:"name"`
	Budget     decimal.Decimal `json:"budget"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage int             `json:"percentage"`
	OverBudget bool            `json:"overBudget"`
}

// GoalSummary is one savings goal with its derived progress.
type GoalSummary struct {
	Name       string          `json:"name"`
	Target     decimal.Decimal `json:"target"`
	Saved      decimal.Decimal `json:"saved"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage int             `json:"percentage"`
	Due        civil.Date      `json:"dueDate"`
}

// Digest is the ephemeral snapshot handed to the assistant. It is rebuilt
// from the live collections on every query and never persisted.
type Digest struct {
	TotalIncome        decimal.Decimal      `json:"totalIncome"`
	TotalExpenses      decimal.Decimal      `json:"totalExpenses"`
	NetWorth           decimal.Decimal      `json:"netWorth"`
	TransactionCount   int                  `json:"transactionCount"`
	RecentTransactions []domain.Transaction `json:"recentTransactions"`
	Budgets            []BudgetSummary      `json:"budgets"`
	Goals              []GoalSummary        `json:"goals"`
}

// Build computes a digest from collection snapshots.
func Build(txs []domain.Transaction, budgets []domain.Budget, goals []domain.Goal) Digest {
	totals := report.ComputeTotals(txs)

	d := Digest{
		TotalIncome:        totals.Income,
		TotalExpenses:      totals.Expenses,
		NetWorth:           totals.NetWorth,
		TransactionCount:   len(txs),
		RecentTransactions: report.Recent(txs, RecentTransactionLimit),
	}
	for _, b := range budgets {
		progress := report.ComputeBudgetProgress(b)
		d.Budgets = append(d.Budgets, BudgetSummary{
			Name:       b.Name,
			Budget:     b.Amount,
			Spent:      b.Spent,
			Remaining:  progress.Remaining,
			Percentage: progress.Percentage,
			OverBudget: progress.OverBudget,
		})
	}
	for _, g := range goals {
		progress := report.ComputeGoalProgress(g)
		d.Goals = append(d.Goals, GoalSummary{
			Name:       g.Name,
			Target:     g.Target,
			Saved:      g.Saved,
			Remaining:  progress.Remaining,
			Percentage: progress.Percentage,
			Due:        g.Due,
		})
	}
	return d
}

// FormatForPrompt renders the digest as the fixed-section text block sent
// to the assistant. A section is omitted when its source collection is
// empty; when transactions, budgets, and goals are all empty the sentinel
// line is returned instead.
func FormatForPrompt(d Digest) string {
	var sb strings.Builder

	if d.TransactionCount > 0 {
		fmt.Fprintf(&sb, "Financial Summary:\n")
		fmt.Fprintf(&sb, "- Total Income: $%s\n", money(d.TotalIncome))
		fmt.Fprintf(&sb, "- Total Expenses: $%s\n", money(d.TotalExpenses))
		fmt.Fprintf(&sb, "- Net Worth: $%s\n", money(d.NetWorth))
		fmt.Fprintf(&sb, "- Number of Transactions: %d\n\n", d.TransactionCount)

		fmt.Fprintf(&sb, "Recent Transactions (last %d):\n", len(d.RecentTransactions))
		for _, t := range d.RecentTransactions {
			sign := "+"
			if t.Amount.Sign() < 0 {
				sign = "-"
			}
			fmt.Fprintf(&sb, "- %s: %s$%s (%s) on %s\n", t.Merchant, sign, money(t.Amount.Abs()), t.Category, t.Date)
		}
		sb.WriteString("\n")
	}

	if len(d.Budgets) > 0 {
		sb.WriteString("Budgets:\n")
		for _, b := range d.Budgets {
			fmt.Fprintf(&sb, "- %s: Spent $%s of $%s (%d%%)", b.Name, money(b.Spent), money(b.Budget), b.Percentage)
			if b.OverBudget {
				sb.WriteString(" - OVER BUDGET")
			}
			fmt.Fprintf(&sb, " - $%s remaining\n", money(b.Remaining))
		}
		sb.WriteString("\n")
	}

	if len(d.Goals) > 0 {
		sb.WriteString("Savings Goals:\n")
		for _, g := range d.Goals {
			fmt.Fprintf(&sb, "- %s: Saved $%s of $%s (%d%%) - $%s remaining - Due: %s\n",
				g.Name, money(g.Saved), money(g.Target), g.Percentage, money(g.Remaining), g.Due)
		}
		sb.WriteString("\n")
	}

	if sb.Len() == 0 {
		return "No financial data available."
	}
	return sb.String()
}

// money renders an amount with thousands separators and no trailing
// fractional zeros: 2950.00 -> "2,950", 86.45 -> "86.45".
func money(d decimal.Decimal) string {
	s := d.String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, hasFrac := strings.Cut(s, ".")
	if hasFrac {
		frac = strings.TrimRight(frac, "0")
	}

	var sb strings.Builder
	if neg {
		sb.WriteString("-")
	}
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteString(",")
		}
		sb.WriteRune(r)
	}
	if frac != "" {
		sb.WriteString(".")
		sb.WriteString(frac)
	}
	return sb.String()
}
