package models

import (
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "trackit/internal/errors"
)

func validExpenseArgs() (string, int64, string, time.Time, Category, Currency, PaymentMethod) {
	return "11111111-1111-1111-1111-111111111111",
		10050,
		"Valid expense description",
		time.Now().Add(-time.Hour),
		CategoryFood,
		CurrencyBRL,
		PaymentMethodCreditCard
}

func assertInvalidInput(t *testing.T, err error, message string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error %q, got nil", message)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	if appErr.Code != apperrors.ErrInvalidInput.Code {
		t.Errorf("expected code %q, got %q", apperrors.ErrInvalidInput.Code, appErr.Code)
	}
	if appErr.Message != message {
		t.Errorf("expected message %q, got %q", message, appErr.Message)
	}
}

func TestNewExpense(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		ownerID, amount, desc, date, cat, cur, method := validExpenseArgs()

		e, err := NewExpense(ownerID, amount, desc, date, cat, cur, method)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if e.UserID != ownerID {
			t.Errorf("expected owner %s, got %s", ownerID, e.UserID)
		}
		if e.Amount != amount {
			t.Errorf("expected amount %d, got %d", amount, e.Amount)
		}
		if e.Description != desc {
			t.Errorf("expected description %q, got %q", desc, e.Description)
		}
		if !e.ExpenseDate.Equal(date) {
			t.Errorf("expected date %v, got %v", date, e.ExpenseDate)
		}
		if e.Category != cat || e.Currency != cur || e.PaymentMethod != method {
			t.Errorf("unexpected enums: %s %s %s", e.Category, e.Currency, e.PaymentMethod)
		}
	})

	t.Run("missing_owner", func(t *testing.T) {
		_, amount, desc, date, cat, cur, method := validExpenseArgs()

		_, err := NewExpense("", amount, desc, date, cat, cur, method)
		assertInvalidInput(t, err, "User cannot be null")
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		ownerID, _, desc, date, cat, cur, method := validExpenseArgs()

		for _, amount := range []int64{0, -1, -10050} {
			_, err := NewExpense(ownerID, amount, desc, date, cat, cur, method)
			assertInvalidInput(t, err, "Amount must be positive")
		}
	})

	t.Run("description_out_of_bounds", func(t *testing.T) {
		ownerID, amount, _, date, cat, cur, method := validExpenseArgs()

		for _, desc := range []string{"", "ab", "  a  ", strings.Repeat("x", 256)} {
			_, err := NewExpense(ownerID, amount, desc, date, cat, cur, method)
			assertInvalidInput(t, err, "Description must be between 3 and 255 characters")
		}
	})

	t.Run("future_expense_date", func(t *testing.T) {
		ownerID, amount, desc, _, cat, cur, method := validExpenseArgs()

		_, err := NewExpense(ownerID, amount, desc, time.Now().Add(time.Hour), cat, cur, method)
		assertInvalidInput(t, err, "Expense date must be in the past or present")
	})

	t.Run("missing_enums", func(t *testing.T) {
		ownerID, amount, desc, date, cat, cur, method := validExpenseArgs()

		_, err := NewExpense(ownerID, amount, desc, date, "", cur, method)
		assertInvalidInput(t, err, "Category cannot be null")

		_, err = NewExpense(ownerID, amount, desc, date, cat, "", method)
		assertInvalidInput(t, err, "Currency cannot be null")

		_, err = NewExpense(ownerID, amount, desc, date, cat, cur, "")
		assertInvalidInput(t, err, "Payment method cannot be null")
	})

	t.Run("unknown_enum_values", func(t *testing.T) {
		ownerID, amount, desc, date, _, cur, method := validExpenseArgs()

		_, err := NewExpense(ownerID, amount, desc, date, Category("SNACKS"), cur, method)
		testAppErrorCode(t, err, apperrors.ErrInvalidInput.Code)
	})
}

func TestExpenseSetters(t *testing.T) {
	newValid := func(t *testing.T) *Expense {
		t.Helper()
		e, err := NewExpense(validExpenseArgs())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return e
	}

	t.Run("set_amount_revalidates", func(t *testing.T) {
		e := newValid(t)

		if err := e.SetAmount(5025); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if e.Amount != 5025 {
			t.Errorf("expected 5025, got %d", e.Amount)
		}

		assertInvalidInput(t, e.SetAmount(0), "Amount must be positive")
		if e.Amount != 5025 {
			t.Errorf("failed setter must not mutate, got %d", e.Amount)
		}
	})

	t.Run("set_description_revalidates", func(t *testing.T) {
		e := newValid(t)

		assertInvalidInput(t, e.SetDescription("ab"), "Description must be between 3 and 255 characters")
		if err := e.SetDescription("Weekly groceries"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("set_expense_date_rejects_future", func(t *testing.T) {
		e := newValid(t)

		assertInvalidInput(t, e.SetExpenseDate(time.Now().Add(time.Minute)),
			"Expense date must be in the past or present")
	})

	t.Run("set_enums_revalidate", func(t *testing.T) {
		e := newValid(t)

		if err := e.SetCategory(CategoryHealth); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertInvalidInput(t, e.SetCategory(""), "Category cannot be null")

		if err := e.SetCurrency(CurrencyJPY); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertInvalidInput(t, e.SetCurrency(""), "Currency cannot be null")

		if err := e.SetPaymentMethod(PaymentMethodPix); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertInvalidInput(t, e.SetPaymentMethod(""), "Payment method cannot be null")
	})
}

func testAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", code)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Errorf("expected code %q, got %q", code, appErr.Code)
	}
}
