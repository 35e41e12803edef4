package domain

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// SeedTransactions returns the sample transactions used when storage holds
// no usable transaction data. Callers receive a fresh slice each time.
func SeedTransactions() []Transaction {
	return []Transaction{
		{ID: 1, Merchant: "Whole Foods", Category: "Groceries", Amount: dec("-86.45"), Date: day("2025-11-02")},
		{ID: 2, Merchant: "Starbucks", Category: "Dining", Amount: dec("-5.75"), Date: day("2025-11-02")},
		{ID: 3, Merchant: "Payroll", Category: "Income", Amount: dec("2950.00"), Date: day("2025-11-01")},
		{ID: 4, Merchant: "Lyft", Category: "Transport", Amount: dec("-18.20"), Date: day("2025-10-31")},
	}
}

// SeedBudgets returns the sample budgets used when storage holds no usable
// budget data.
func SeedBudgets() []Budget {
	return []Budget{
		{ID: 1, Name: "Groceries", Amount: dec("600"), Spent: dec("420"), Color: ColorEmerald},
		{ID: 2, Name: "Dining", Amount: dec("300"), Spent: dec("220"), Color: ColorIndigo},
		{ID: 3, Name: "Transport", Amount: dec("180"), Spent: dec("140"), Color: ColorAmber},
		{ID: 4, Name: "Shopping", Amount: dec("400"), Spent: dec("365"), Color: ColorRose},
	}
}

// SeedGoals returns the sample savings goals used when storage holds no
// usable goal data.
func SeedGoals() []Goal {
	return []Goal{
		{ID: 1, Name: "Emergency Fund", Target: dec("10000"), Saved: dec("6200"), Due: day("2026-06-01")},
		{ID: 2, Name: "Hawaii Trip", Target: dec("4500"), Saved: dec("1900"), Due: day("2025-08-15")},
		{ID: 3, Name: "New Laptop", Target: dec("2200"), Saved: dec("900"), Due: day("2025-12-01")},
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) civil.Date {
	d, err := civil.ParseDate(s)
	if err != nil {
		panic("domain: bad seed date " + s)
	}
	return d
}
