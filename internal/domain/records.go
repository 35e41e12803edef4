package domain

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Transaction is one user-entered ledger entry. A negative amount is an
// expense, a non-negative amount is income. IDs are unique within the
// collection and assigned by the mutation service (max existing + 1).
type Transaction struct {
	ID       int             `json:"id"`
	Merchant string          `json:"merchant"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Date     civil.Date      `json:"date"` // calendar date, no timezone
}

// Budget is a planned spend for a named category of expenses.
// Spent may exceed Amount; that is the over-budget state, not an error.
type Budget struct {
	ID     int             `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"` // planned spend, always positive
	Spent  decimal.Decimal `json:"spent"`  // non-negative
	Color  Color           `json:"color"`
}

// Goal is a savings goal with a target amount and a due date.
type Goal struct {
	ID     int             `json:"id"`
	Name   string          `json:"name"`
	Target decimal.Decimal `json:"target"` // always positive
	Saved  decimal.Decimal `json:"saved"`  // non-negative, <= Target at input time
	Due    civil.Date      `json:"due"`
}

// Profile holds display metadata for the signed-in user. It is not
// identity-bearing: Email is sourced from the identity provider and the
// remaining fields are local overrides of the provider's metadata.
type Profile struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"` // data URI or empty
}

// Color is a symbolic tag from the fixed budget palette.
type Color string

const (
	ColorEmerald Color = "emerald"
	ColorIndigo  Color = "indigo"
	ColorAmber   Color = "amber"
	ColorRose    Color = "rose"
	ColorBlue    Color = "blue"
	ColorPurple  Color = "purple"
	ColorTeal    Color = "teal"
	ColorOrange  Color = "orange"
)

// Palette returns the budget color palette in display order.
func Palette() []Color {
	return []Color{
		ColorEmerald, ColorIndigo, ColorAmber, ColorRose,
		ColorBlue, ColorPurple, ColorTeal, ColorOrange,
	}
}

// Valid reports whether c is a member of the palette.
func (c Color) Valid() bool {
	for _, p := range Palette() {
		if c == p {
			return true
		}
	}
	return false
}

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid reports whether t is a known theme value.
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

// Categories returns the enumerated transaction category set. The set is
// extensible: records loaded from storage may carry categories outside it,
// and filtering treats any category string as an exact-match key.
func Categories() []string {
	return []string{
		"Groceries",
		"Dining",
		"Transport",
		"Shopping",
		"Entertainment",
		"Bills",
		"Income",
		"Other",
	}
}
