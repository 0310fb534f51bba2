package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"trackit/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Email:    email,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestExpense creates an expense with the given amount (in cents)
// and expense date, using FOOD / BRL / CREDIT_CARD defaults.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID string, amount int64, date time.Time) *models.Expense {
	t.Helper()
	return CreateTestExpenseWith(t, db, userID, amount, date,
		models.CategoryFood, models.CurrencyBRL, models.PaymentMethodCreditCard)
}

// CreateTestExpenseWith creates an expense with explicit category,
// currency, and payment method.
func CreateTestExpenseWith(
	t *testing.T,
	db *gorm.DB,
	userID string,
	amount int64,
	date time.Time,
	category models.Category,
	currency models.Currency,
	method models.PaymentMethod,
) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:        userID,
		Amount:        amount,
		Description:   fmt.Sprintf("Test Expense %d", nextID()),
		ExpenseDate:   date,
		Category:      category,
		Currency:      currency,
		PaymentMethod: method,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}
