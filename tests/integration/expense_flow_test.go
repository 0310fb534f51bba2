package integration

import (
	"fmt"
	"net/http"
	"testing"
)

func expenseBody(amount int64, description, date, category, currency, method string) string {
	return fmt.Sprintf(
		`{"amount":%d,"description":%q,"expense_date":%q,"category":%q,"currency":%q,"payment_method":%q}`,
		amount, description, date, category, currency, method)
}

func TestExpenseFlow_CreateListGetUpdateDelete(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "crud@test.com", "password123")

	// Create
	expenseID := app.createExpense(t, token,
		expenseBody(12345, "Dinner at the corner place", "2025-08-10", "FOOD", "BRL", "CREDIT_CARD"))

	// List
	rec := app.request("GET", "/api/v1/expenses", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("list failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["total_elements"] != float64(1) {
		t.Fatalf("expected 1 expense, got %v", result["total_elements"])
	}

	// Get
	rec = app.request("GET", "/api/v1/expenses/"+expenseID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get failed: %d %s", rec.Code, rec.Body.String())
	}
	expense := parseJSON(t, rec)["expense"].(map[string]interface{})
	if expense["amount"] != float64(12345) || expense["category"] != "FOOD" {
		t.Errorf("unexpected expense: %v", expense)
	}

	// Update a subset of fields
	rec = app.request("PUT", "/api/v1/expenses/"+expenseID, `{"amount":9900,"category":"HEALTH"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	updated := parseJSON(t, rec)["expense"].(map[string]interface{})
	if updated["amount"] != float64(9900) || updated["category"] != "HEALTH" {
		t.Errorf("unexpected updated expense: %v", updated)
	}
	if updated["description"] != "Dinner at the corner place" {
		t.Errorf("description changed unexpectedly: %v", updated["description"])
	}

	// Delete
	rec = app.request("DELETE", "/api/v1/expenses/"+expenseID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", "/api/v1/expenses/"+expenseID, "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestExpenseFlow_OwnershipIsolation(t *testing.T) {
	app := setupApp(t)
	aliceToken, _ := app.registerUser(t, "alice@test.com", "password123")
	bobToken, _ := app.registerUser(t, "bob@test.com", "password123")

	expenseID := app.createExpense(t, aliceToken,
		expenseBody(5000, "Groceries for the week", "2025-08-05", "FOOD", "BRL", "PIX"))

	// Bob cannot see, update, or delete Alice's expense.
	rec := app.request("GET", "/api/v1/expenses/"+expenseID, "", bobToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for other user's get, got %d", rec.Code)
	}

	rec = app.request("PUT", "/api/v1/expenses/"+expenseID, `{"amount":1}`, bobToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for other user's update, got %d", rec.Code)
	}

	rec = app.request("DELETE", "/api/v1/expenses/"+expenseID, "", bobToken)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for other user's delete, got %d", rec.Code)
	}

	// Bob's list is empty, Alice still sees her expense.
	rec = app.request("GET", "/api/v1/expenses", "", bobToken)
	if parseJSON(t, rec)["total_elements"] != float64(0) {
		t.Error("expected empty list for bob")
	}
	rec = app.request("GET", "/api/v1/expenses", "", aliceToken)
	if parseJSON(t, rec)["total_elements"] != float64(1) {
		t.Error("expected alice's expense to survive")
	}
}

func TestExpenseFlow_FilteredList(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "filters@test.com", "password123")

	app.createExpense(t, token, expenseBody(100, "July groceries", "2025-07-15", "FOOD", "BRL", "PIX"))
	app.createExpense(t, token, expenseBody(200, "August groceries", "2025-08-15", "FOOD", "BRL", "CASH"))
	app.createExpense(t, token, expenseBody(300, "August pharmacy", "2025-08-20", "HEALTH", "BRL", "CASH"))

	// Month filter
	rec := app.request("GET", "/api/v1/expenses?month=2025-08", "", token)
	if parseJSON(t, rec)["total_elements"] != float64(2) {
		t.Errorf("expected 2 expenses in August: %s", rec.Body.String())
	}

	// Month + category
	rec = app.request("GET", "/api/v1/expenses?month=2025-08&category=HEALTH", "", token)
	if parseJSON(t, rec)["total_elements"] != float64(1) {
		t.Errorf("expected 1 HEALTH expense in August: %s", rec.Body.String())
	}

	// Explicit range wins over month
	rec = app.request("GET", "/api/v1/expenses?month=2025-08&start_date=2025-07-01&end_date=2025-07-31", "", token)
	if parseJSON(t, rec)["total_elements"] != float64(1) {
		t.Errorf("expected only the July expense: %s", rec.Body.String())
	}

	// Most recent first
	rec = app.request("GET", "/api/v1/expenses", "", token)
	content := parseJSON(t, rec)["content"].([]interface{})
	first := content[0].(map[string]interface{})
	if first["amount"] != float64(300) {
		t.Errorf("expected the August 20 expense first, got %v", first["amount"])
	}

	// Invalid month format
	rec = app.request("GET", "/api/v1/expenses?month=08-2025", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad month, got %d", rec.Code)
	}
}

func TestExpenseFlow_Summary(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "summary@test.com", "password123")

	app.createExpense(t, token, expenseBody(100, "Groceries run one", "2025-08-01", "FOOD", "BRL", "PIX"))
	app.createExpense(t, token, expenseBody(250, "Groceries run two", "2025-08-05", "FOOD", "BRL", "PIX"))
	app.createExpense(t, token, expenseBody(500, "Concert tickets", "2025-08-10", "ENTERTAINMENT", "BRL", "CREDIT_CARD"))
	app.createExpense(t, token, expenseBody(300, "Dinner abroad", "2025-08-12", "FOOD", "USD", "CREDIT_CARD"))

	rec := app.request("GET", "/api/v1/expenses/summary?start_date=2025-08-01&end_date=2025-08-31", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)

	if result["count"] != float64(4) || result["total"] != float64(1150) {
		t.Errorf("expected count 4 total 1150, got count %v total %v", result["count"], result["total"])
	}

	// Categories ordered by total descending: FOOD 650, ENTERTAINMENT 500.
	categories := result["totals_by_category"].([]interface{})
	first := categories[0].(map[string]interface{})
	if first["category"] != "FOOD" || first["total"] != float64(650) {
		t.Errorf("expected FOOD 650 first, got %v", first)
	}

	currencies := result["totals_by_currency"].([]interface{})
	if len(currencies) != 2 {
		t.Fatalf("expected 2 currencies, got %d", len(currencies))
	}

	// PIX and CREDIT_CARD tie at 2 uses; the tie breaks alphabetically.
	mostUsed := result["most_used_payment_method"].(map[string]interface{})
	if mostUsed["method"] != "CREDIT_CARD" || mostUsed["count"] != float64(2) {
		t.Errorf("expected CREDIT_CARD with count 2, got %v", mostUsed)
	}

	// Start after end is rejected before any query runs.
	rec = app.request("GET", "/api/v1/expenses/summary?start_date=2025-08-31&end_date=2025-08-01", "", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	errObj := parseJSON(t, rec)["error"].(map[string]interface{})
	if errObj["message"] != "Start date must be before or equal to end date" {
		t.Errorf("unexpected message: %v", errObj["message"])
	}
}
