package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "trackit/internal/errors"
	"trackit/internal/models"
	"trackit/internal/pagination"
	"trackit/internal/query"
)

// expenseService handles expense-related business logic.
type expenseService struct {
	db *gorm.DB
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB) ExpenseServicer {
	return &expenseService{db: db}
}

// Create validates and persists a new expense for the owner.
func (s *expenseService) Create(ownerID string, in CreateExpenseInput) (*models.Expense, error) {
	expense, err := models.NewExpense(
		ownerID,
		in.Amount,
		in.Description,
		in.ExpenseDate,
		in.Category,
		in.Currency,
		in.PaymentMethod,
	)
	if err != nil {
		return nil, err
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// List retrieves a paginated, filtered list of the owner's expenses,
// most recent expense date first.
func (s *expenseService) List(ownerID string, page pagination.PageRequest, filter query.ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	if ownerID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "User cannot be null")
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	spec, err := query.ExpensesForOwner(ownerID, filter)
	if err != nil {
		return nil, err
	}

	base := spec.Apply(s.db.Model(&models.Expense{}))

	var totalElements int64
	if err := base.Count(&totalElements).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Order("expense_date DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.Size, totalElements)
	return &result, nil
}

// GetByID retrieves a single expense scoped by (id, owner).
func (s *expenseService) GetByID(ownerID, expenseID string) (*models.Expense, error) {
	if ownerID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "User cannot be null")
	}

	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", expenseID, ownerID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &expense, nil
}

// Update applies the non-nil fields of the patch through the entity's
// validating setters and persists the result. Absent fields keep their
// prior value.
func (s *expenseService) Update(ownerID, expenseID string, patch ExpenseUpdate) (*models.Expense, error) {
	expense, err := s.GetByID(ownerID, expenseID)
	if err != nil {
		return nil, err
	}

	if patch.Amount != nil {
		if err := expense.SetAmount(*patch.Amount); err != nil {
			return nil, err
		}
	}
	if patch.Description != nil {
		if err := expense.SetDescription(*patch.Description); err != nil {
			return nil, err
		}
	}
	if patch.ExpenseDate != nil {
		if err := expense.SetExpenseDate(*patch.ExpenseDate); err != nil {
			return nil, err
		}
	}
	if patch.Category != nil {
		if err := expense.SetCategory(*patch.Category); err != nil {
			return nil, err
		}
	}
	if patch.Currency != nil {
		if err := expense.SetCurrency(*patch.Currency); err != nil {
			return nil, err
		}
	}
	if patch.PaymentMethod != nil {
		if err := expense.SetPaymentMethod(*patch.PaymentMethod); err != nil {
			return nil, err
		}
	}

	if err := s.db.Save(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return expense, nil
}

// Delete removes an expense scoped by (id, owner).
func (s *expenseService) Delete(ownerID, expenseID string) error {
	expense, err := s.GetByID(ownerID, expenseID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(expense).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// Summary computes the aggregate report for the owner over [startDate,
// endDate], both inclusive and expanded to full-day bounds. startDate
// defaults to the first day of the current month and endDate to today.
func (s *expenseService) Summary(ownerID string, startDate, endDate *time.Time) (*ExpenseSummary, error) {
	if ownerID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "User cannot be null")
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if startDate != nil {
		start = *startDate
	}
	if endDate != nil {
		end = *endDate
	}

	if start.After(end) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Start date must be before or equal to end date")
	}

	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	to := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999999999, end.Location())

	countAndTotal, err := s.countAndSum(ownerID, from, to)
	if err != nil {
		return nil, err
	}
	byCurrency, err := s.groupByCurrency(ownerID, from, to)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.groupByCategory(ownerID, from, to)
	if err != nil {
		return nil, err
	}
	mostUsed, err := s.mostUsedPaymentMethod(ownerID, from, to)
	if err != nil {
		return nil, err
	}

	return &ExpenseSummary{
		StartDate:             start,
		EndDate:               end,
		TotalsByCurrency:      byCurrency,
		TotalsByCategory:      byCategory,
		MostUsedPaymentMethod: mostUsed,
		Total:                 countAndTotal.Total,
		Count:                 countAndTotal.Count,
	}, nil
}

type countAndTotal struct {
	Count int64
	Total int64
}

// countAndSum counts matching expense rows and sums their amounts.
// An empty range yields count 0 and total 0.
func (s *expenseService) countAndSum(ownerID string, from, to time.Time) (countAndTotal, error) {
	var result countAndTotal
	err := s.scoped(ownerID, from, to).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Scan(&result).Error
	if err != nil {
		return countAndTotal{}, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return result, nil
}

// groupByCategory returns per-category totals and counts, highest total
// first, category name ascending on ties. Categories without a matching
// expense are omitted.
func (s *expenseService) groupByCategory(ownerID string, from, to time.Time) ([]CategoryTotal, error) {
	var rows []CategoryTotal
	err := s.scoped(ownerID, from, to).
		Select("category, SUM(amount) AS total, COUNT(*) AS count").
		Group("category").
		Order("SUM(amount) DESC, category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// groupByCurrency returns per-currency totals, highest total first,
// currency code ascending on ties.
func (s *expenseService) groupByCurrency(ownerID string, from, to time.Time) ([]CurrencyTotal, error) {
	var rows []CurrencyTotal
	err := s.scoped(ownerID, from, to).
		Select("currency, SUM(amount) AS total").
		Group("currency").
		Order("SUM(amount) DESC, currency ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return rows, nil
}

// mostUsedPaymentMethod returns the payment method with the highest
// occurrence count in range, method name ascending on ties, or nil when
// no expense matches.
func (s *expenseService) mostUsedPaymentMethod(ownerID string, from, to time.Time) (*PaymentMethodSummary, error) {
	var rows []PaymentMethodSummary
	err := s.scoped(ownerID, from, to).
		Select("payment_method AS method, COUNT(*) AS count").
		Group("payment_method").
		Order("COUNT(*) DESC, payment_method ASC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// scoped returns the owner + date-range base query every aggregation
// shares, so all four read from the same window.
func (s *expenseService) scoped(ownerID string, from, to time.Time) *gorm.DB {
	return s.db.Model(&models.Expense{}).
		Where("user_id = ? AND expense_date BETWEEN ? AND ?", ownerID, from, to)
}
