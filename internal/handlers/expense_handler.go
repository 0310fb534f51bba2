package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "trackit/internal/errors"
	"trackit/internal/models"
	"trackit/internal/pagination"
	"trackit/internal/query"
	"trackit/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// CreateExpenseRequest represents the request payload for creating an expense
type CreateExpenseRequest struct {
	Amount        int64                `json:"amount" binding:"required,gt=0"`
	Description   string               `json:"description" binding:"required,min=3,max=255"`
	ExpenseDate   string               `json:"expense_date" binding:"required"`
	Category      models.Category      `json:"category" binding:"required,expense_category"`
	Currency      models.Currency      `json:"currency" binding:"required,currency_code"`
	PaymentMethod models.PaymentMethod `json:"payment_method" binding:"required,payment_method"`
}

// ExpenseResponse represents an expense in the response
type ExpenseResponse struct {
	ID            string               `json:"id"`
	Amount        int64                `json:"amount"`
	Description   string               `json:"description"`
	ExpenseDate   time.Time            `json:"expense_date"`
	CreatedAt     time.Time            `json:"created_at"`
	Category      models.Category      `json:"category"`
	Currency      models.Currency      `json:"currency"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

// CreateExpense handles the creation of a new expense
// @Summary     Create expense
// @Description Create a new expense for the authenticated user
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} MessageResponse "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	expenseDate, parseErr := parseFlexibleTime(req.ExpenseDate)
	if parseErr != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid expense_date format, use RFC3339 or YYYY-MM-DD"))
		return
	}

	expense, err := h.expenseService.Create(userID, services.CreateExpenseInput{
		Amount:        req.Amount,
		Description:   req.Description,
		ExpenseDate:   expenseDate,
		Category:      req.Category,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Expense created successfully",
		"expense": toExpenseResponse(expense),
	})
}

// ListExpenses handles the paginated, filtered listing of the user's expenses
// @Summary     List expenses
// @Description Get a paginated list of the user's expenses, most recent first, with optional filters
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page           query int    false "Page number, zero-based (default 0)"
// @Param       size           query int    false "Items per page (default 10)"
// @Param       month          query string false "Filter by month (YYYY-MM); ignored when start_date or end_date is set"
// @Param       start_date     query string false "Filter by start date-time (RFC3339 or YYYY-MM-DD)"
// @Param       end_date       query string false "Filter by end date-time (RFC3339 or YYYY-MM-DD)"
// @Param       category       query string false "Filter by category (e.g. FOOD)"
// @Param       currency       query string false "Filter by currency (e.g. BRL)"
// @Param       payment_method query string false "Filter by payment method (e.g. PIX)"
// @Success     200 {object} pagination.PageResponse[ExpenseResponse] "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	page, err := parsePageRequest(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filter, err := parseExpenseFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.expenseService.List(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	content := make([]ExpenseResponse, 0, len(result.Content))
	for i := range result.Content {
		content = append(content, toExpenseResponse(&result.Content[i]))
	}

	c.JSON(http.StatusOK, pagination.PageResponse[ExpenseResponse]{
		Content:       content,
		Page:          result.Page,
		Size:          result.Size,
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages,
	})
}

func parsePageRequest(c *gin.Context) (pagination.PageRequest, error) {
	var page pagination.PageRequest

	p, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		return page, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid page")
	}
	s, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil {
		return page, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid size")
	}

	page.Page = p
	page.Size = s
	return page, nil
}

func parseExpenseFilter(c *gin.Context) (query.ExpenseFilter, error) {
	var filter query.ExpenseFilter

	if v := c.Query("month"); v != "" {
		filter.Month = &v
	}

	if v := c.Query("start_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid start_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.StartDate = &t
	}

	if v := c.Query("end_date"); v != "" {
		t, err := parseFlexibleTime(v)
		if err != nil {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid end_date format, use RFC3339 or YYYY-MM-DD")
		}
		filter.EndDate = &t
	}

	if v := c.Query("category"); v != "" {
		category := models.Category(v)
		if !category.Valid() {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid category")
		}
		filter.Category = &category
	}

	if v := c.Query("currency"); v != "" {
		currency := models.Currency(v)
		if !currency.Valid() {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid currency")
		}
		filter.Currency = &currency
	}

	if v := c.Query("payment_method"); v != "" {
		method := models.PaymentMethod(v)
		if !method.Valid() {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid payment_method")
		}
		filter.PaymentMethod = &method
	}

	return filter, nil
}

// GetExpenseByID handles the retrieval of a specific expense
// @Summary     Get expense by ID
// @Description Get a specific expense by ID
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} ExpenseResponse "Expense details"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetByID(userID, expenseID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": toExpenseResponse(expense)})
}

// UpdateExpenseRequest represents the request payload for updating an expense.
// All fields are optional; absent fields keep their current value.
type UpdateExpenseRequest struct {
	Amount        *int64                `json:"amount" binding:"omitempty,gt=0"`
	Description   *string               `json:"description" binding:"omitempty,min=3,max=255"`
	ExpenseDate   *string               `json:"expense_date"`
	Category      *models.Category      `json:"category" binding:"omitempty,expense_category"`
	Currency      *models.Currency      `json:"currency" binding:"omitempty,currency_code"`
	PaymentMethod *models.PaymentMethod `json:"payment_method" binding:"omitempty,payment_method"`
}

// UpdateExpense handles updating an existing expense
// @Summary     Update expense
// @Description Update an existing expense. Only the provided fields are changed.
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string               true "Expense ID"
// @Param       request body UpdateExpenseRequest true "Fields to update"
// @Success     200 {object} ExpenseResponse "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	patch := services.ExpenseUpdate{
		Amount:        req.Amount,
		Description:   req.Description,
		Category:      req.Category,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
	}

	if req.ExpenseDate != nil && *req.ExpenseDate != "" {
		parsed, parseErr := parseFlexibleTime(*req.ExpenseDate)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid expense_date format, use RFC3339 or YYYY-MM-DD"))
			return
		}
		patch.ExpenseDate = &parsed
	}

	expense, err := h.expenseService.Update(userID, expenseID, patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expense": toExpenseResponse(expense)})
}

// DeleteExpense handles the deletion of an expense
// @Summary     Delete expense
// @Description Delete an expense by ID
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Expense ID"
// @Success     200 {object} MessageResponse "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenseID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.Delete(userID, expenseID); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// ExpenseSummaryResponse represents the aggregate summary in the response
type ExpenseSummaryResponse struct {
	StartDate             string                         `json:"start_date"`
	EndDate               string                         `json:"end_date"`
	TotalsByCurrency      []services.CurrencyTotal       `json:"totals_by_currency"`
	TotalsByCategory      []services.CategoryTotal       `json:"totals_by_category"`
	MostUsedPaymentMethod *services.PaymentMethodSummary `json:"most_used_payment_method,omitempty"`
	Total                 int64                          `json:"total"`
	Count                 int64                          `json:"count"`
}

// GetSummary handles the expense summary over a date range
// @Summary     Expense summary
// @Description Get totals and breakdowns for a date range. Defaults to the current month up to today.
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Start date (YYYY-MM-DD, default first day of current month)"
// @Param       end_date   query string false "End date (YYYY-MM-DD, default today)"
// @Success     200 {object} ExpenseSummaryResponse "Summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/summary [get]
func (h *ExpenseHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var startDate, endDate *time.Time
	if v := c.Query("start_date"); v != "" {
		t, parseErr := parseDate(v)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid start_date format, use YYYY-MM-DD"))
			return
		}
		startDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, parseErr := parseDate(v)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid end_date format, use YYYY-MM-DD"))
			return
		}
		endDate = &t
	}

	summary, err := h.expenseService.Summary(userID, startDate, endDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpenseSummaryResponse{
		StartDate:             summary.StartDate.Format("2006-01-02"),
		EndDate:               summary.EndDate.Format("2006-01-02"),
		TotalsByCurrency:      summary.TotalsByCurrency,
		TotalsByCategory:      summary.TotalsByCategory,
		MostUsedPaymentMethod: summary.MostUsedPaymentMethod,
		Total:                 summary.Total,
		Count:                 summary.Count,
	})
}

func toExpenseResponse(e *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		Amount:        e.Amount,
		Description:   e.Description,
		ExpenseDate:   e.ExpenseDate,
		CreatedAt:     e.CreatedAt,
		Category:      e.Category,
		Currency:      e.Currency,
		PaymentMethod: e.PaymentMethod,
	}
}
