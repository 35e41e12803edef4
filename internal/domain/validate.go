package domain

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// ValidationError describes a rejected user input. It is surfaced inline
// next to the originating form field and never mutates any collection.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// TransactionInput carries the user-editable fields of a transaction.
type TransactionInput struct {
	Merchant string          `json:"merchant"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Date     civil.Date      `json:"date"`
}

// Validate checks the input. The zero decimal is accepted as income; the
// sign convention is the caller's responsibility.
func (in TransactionInput) Validate() error {
	if strings.TrimSpace(in.Merchant) == "" {
		return &ValidationError{Field: "merchant", Message: "merchant is required"}
	}
	if strings.TrimSpace(in.Category) == "" {
		return &ValidationError{Field: "category", Message: "category is required"}
	}
	if !in.Date.IsValid() {
		return &ValidationError{Field: "date", Message: "a valid date is required"}
	}
	return nil
}

// BudgetInput carries the user-editable fields of a budget.
type BudgetInput struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Spent  decimal.Decimal `json:"spent"`
	Color  Color           `json:"color"`
}

// Validate enforces the budget invariants: positive planned amount,
// non-negative spent, palette color. Spent above Amount is allowed.
func (in BudgetInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Message: "budget name is required"}
	}
	if in.Amount.Sign() <= 0 {
		return &ValidationError{Field: "amount", Message: "budget amount must be positive"}
	}
	if in.Spent.Sign() < 0 {
		return &ValidationError{Field: "spent", Message: "spent amount cannot be negative"}
	}
	if !in.Color.Valid() {
		return &ValidationError{Field: "color", Message: "unknown budget color"}
	}
	return nil
}

// GoalInput carries the user-editable fields of a savings goal.
type GoalInput struct {
	Name   string          `json:"name"`
	Target decimal.Decimal `json:"target"`
	Saved  decimal.Decimal `json:"saved"`
	Due    civil.Date      `json:"due"`
}

// Validate enforces the goal invariants at input time: positive target,
// 0 <= saved <= target, valid due date.
func (in GoalInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &ValidationError{Field: "name", Message: "goal name is required"}
	}
	if in.Target.Sign() <= 0 {
		return &ValidationError{Field: "target", Message: "target amount must be positive"}
	}
	if in.Saved.Sign() < 0 {
		return &ValidationError{Field: "saved", Message: "saved amount cannot be negative"}
	}
	if in.Saved.GreaterThan(in.Target) {
		return &ValidationError{Field: "saved", Message: "saved amount cannot exceed target amount"}
	}
	if !in.Due.IsValid() {
		return &ValidationError{Field: "due", Message: "a valid due date is required"}
	}
	return nil
}
