package services

import (
	"time"

	"trackit/internal/models"
	"trackit/internal/pagination"
	"trackit/internal/query"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password, confirmPassword string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// CreateExpenseInput holds the validated-at-the-domain fields for a new
// expense. Amount is in cents.
type CreateExpenseInput struct {
	Amount        int64
	Description   string
	ExpenseDate   time.Time
	Category      models.Category
	Currency      models.Currency
	PaymentMethod models.PaymentMethod
}

// ExpenseUpdate is a patch: nil fields keep their current value, non-nil
// fields are applied individually through the entity's validating setters.
type ExpenseUpdate struct {
	Amount        *int64
	Description   *string
	ExpenseDate   *time.Time
	Category      *models.Category
	Currency      *models.Currency
	PaymentMethod *models.PaymentMethod
}

// CategoryTotal is the per-category aggregate of a summary.
type CategoryTotal struct {
	Category models.Category `json:"category"`
	Total    int64           `json:"total"`
	Count    int64           `json:"count"`
}

// CurrencyTotal is the per-currency aggregate of a summary.
type CurrencyTotal struct {
	Currency models.Currency `json:"currency"`
	Total    int64           `json:"total"`
}

// PaymentMethodSummary is the most frequently used payment method in a
// summary period, with its usage count.
type PaymentMethodSummary struct {
	Method models.PaymentMethod `json:"method"`
	Count  int64                `json:"count"`
}

// ExpenseSummary aggregates an owner's expenses over an inclusive date
// range. MostUsedPaymentMethod is nil when no expense falls in the range.
type ExpenseSummary struct {
	StartDate             time.Time             `json:"start_date"`
	EndDate               time.Time             `json:"end_date"`
	TotalsByCurrency      []CurrencyTotal       `json:"totals_by_currency"`
	TotalsByCategory      []CategoryTotal       `json:"totals_by_category"`
	MostUsedPaymentMethod *PaymentMethodSummary `json:"most_used_payment_method,omitempty"`
	Total                 int64                 `json:"total"`
	Count                 int64                 `json:"count"`
}

// ExpenseServicer defines the contract for expense-related business logic.
// Every operation is scoped to the owning user; an expense belonging to a
// different user is indistinguishable from a nonexistent one.
type ExpenseServicer interface {
	Create(ownerID string, in CreateExpenseInput) (*models.Expense, error)
	List(ownerID string, page pagination.PageRequest, filter query.ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
	GetByID(ownerID, expenseID string) (*models.Expense, error)
	Update(ownerID, expenseID string, patch ExpenseUpdate) (*models.Expense, error)
	Delete(ownerID, expenseID string) error
	Summary(ownerID string, startDate, endDate *time.Time) (*ExpenseSummary, error)
}
