package models

import (
	"strings"
	"time"

	apperrors "trackit/internal/errors"
)

// Category classifies what an expense was spent on.
type Category string

const (
	CategoryFood          Category = "FOOD"
	CategoryTransport     Category = "TRANSPORT"
	CategoryRent          Category = "RENT"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryUtilities     Category = "UTILITIES"
	CategoryHealth        Category = "HEALTH"
	CategoryEducation     Category = "EDUCATION"
	CategoryOther         Category = "OTHER"
)

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryRent, CategoryEntertainment,
		CategoryUtilities, CategoryHealth, CategoryEducation, CategoryOther:
		return true
	}
	return false
}

// Currency is the ISO-style code an expense amount is denominated in.
type Currency string

const (
	CurrencyBRL Currency = "BRL"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
)

// Valid reports whether c is one of the supported currencies.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyBRL, CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyJPY:
		return true
	}
	return false
}

// PaymentMethod is how an expense was paid.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentMethodPix          PaymentMethod = "PIX"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodOther        PaymentMethod = "OTHER"
)

// Valid reports whether p is one of the supported payment methods.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentMethodCash, PaymentMethodCreditCard, PaymentMethodDebitCard,
		PaymentMethodPix, PaymentMethodBankTransfer, PaymentMethodOther:
		return true
	}
	return false
}

// Expense represents a single expense record owned by exactly one user.
// Amount is stored in cents. Fields are exported for GORM; all mutation
// outside of persistence must go through the validating setters so that
// every change re-checks the field's invariant.
type Expense struct {
	Base
	UserID        string        `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount        int64         `gorm:"type:bigint;not null" json:"amount"`
	Description   string        `gorm:"size:255;not null" json:"description"`
	ExpenseDate   time.Time     `gorm:"not null;index" json:"expense_date"`
	Category      Category      `gorm:"not null" json:"category"`
	Currency      Currency      `gorm:"not null" json:"currency"`
	PaymentMethod PaymentMethod `gorm:"not null" json:"payment_method"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// NewExpense builds a fully validated expense for the given owner.
// Every field invariant is checked; the first violation is returned.
func NewExpense(
	ownerID string,
	amount int64,
	description string,
	expenseDate time.Time,
	category Category,
	currency Currency,
	paymentMethod PaymentMethod,
) (*Expense, error) {
	if ownerID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "User cannot be null")
	}

	e := &Expense{UserID: ownerID}
	if err := e.SetAmount(amount); err != nil {
		return nil, err
	}
	if err := e.SetDescription(description); err != nil {
		return nil, err
	}
	if err := e.SetExpenseDate(expenseDate); err != nil {
		return nil, err
	}
	if err := e.SetCategory(category); err != nil {
		return nil, err
	}
	if err := e.SetCurrency(currency); err != nil {
		return nil, err
	}
	if err := e.SetPaymentMethod(paymentMethod); err != nil {
		return nil, err
	}
	return e, nil
}

// SetAmount updates the amount, which must be positive.
func (e *Expense) SetAmount(amount int64) error {
	if amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Amount must be positive")
	}
	e.Amount = amount
	return nil
}

// SetDescription updates the description. The trimmed value must be
// between 3 and 255 characters.
func (e *Expense) SetDescription(description string) error {
	trimmed := strings.TrimSpace(description)
	if len(trimmed) < 3 || len(trimmed) > 255 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Description must be between 3 and 255 characters")
	}
	e.Description = description
	return nil
}

// SetExpenseDate updates the expense date, which cannot be in the future.
func (e *Expense) SetExpenseDate(expenseDate time.Time) error {
	if expenseDate.IsZero() || expenseDate.After(time.Now()) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Expense date must be in the past or present")
	}
	e.ExpenseDate = expenseDate
	return nil
}

// SetCategory updates the category.
func (e *Expense) SetCategory(category Category) error {
	if category == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Category cannot be null")
	}
	if !category.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid category: "+string(category))
	}
	e.Category = category
	return nil
}

// SetCurrency updates the currency.
func (e *Expense) SetCurrency(currency Currency) error {
	if currency == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Currency cannot be null")
	}
	if !currency.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid currency: "+string(currency))
	}
	e.Currency = currency
	return nil
}

// SetPaymentMethod updates the payment method.
func (e *Expense) SetPaymentMethod(paymentMethod PaymentMethod) error {
	if paymentMethod == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Payment method cannot be null")
	}
	if !paymentMethod.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid payment method: "+string(paymentMethod))
	}
	e.PaymentMethod = paymentMethod
	return nil
}
