// Package query builds composable, storage-agnostic predicates over
// expenses. A Spec is an ordered list of clauses combined with AND;
// construction never touches the database, and translation to SQL is
// kept separate in Apply so the clauses stay inspectable in tests.
package query

import (
	"time"

	apperrors "trackit/internal/errors"
	"trackit/internal/models"

	"gorm.io/gorm"
)

// Op is the comparison operator of a single clause.
type Op int

const (
	OpEq Op = iota
	OpGTE
	OpLTE
	OpBetween
)

// Clause is one condition on a column. Upper is only set for OpBetween.
type Clause struct {
	Column string
	Op     Op
	Value  interface{}
	Upper  interface{}
}

// Spec is an immutable conjunction of clauses.
type Spec struct {
	clauses []Clause
}

// Clauses returns a copy of the spec's clauses in order.
func (s Spec) Clauses() []Clause {
	out := make([]Clause, len(s.clauses))
	copy(out, s.clauses)
	return out
}

// Apply translates the spec into GORM conditions on q.
func (s Spec) Apply(q *gorm.DB) *gorm.DB {
	for _, c := range s.clauses {
		switch c.Op {
		case OpEq:
			q = q.Where(c.Column+" = ?", c.Value)
		case OpGTE:
			q = q.Where(c.Column+" >= ?", c.Value)
		case OpLTE:
			q = q.Where(c.Column+" <= ?", c.Value)
		case OpBetween:
			q = q.Where(c.Column+" BETWEEN ? AND ?", c.Value, c.Upper)
		}
	}
	return q
}

// ExpenseFilter holds the optional filter parameters for listing
// expenses. All fields are independently optional and combined with AND.
type ExpenseFilter struct {
	Month         *string
	StartDate     *time.Time
	EndDate       *time.Time
	Category      *models.Category
	Currency      *models.Currency
	PaymentMethod *models.PaymentMethod
}

// ExpensesForOwner builds the predicate selecting the owner's expenses
// matching the filter. The owner clause is always present. An explicit
// start/end date range takes precedence over Month; Month must be in
// YYYY-MM form and expands to the full month, first instant to last.
func ExpensesForOwner(ownerID string, f ExpenseFilter) (Spec, error) {
	s := Spec{clauses: []Clause{{Column: "user_id", Op: OpEq, Value: ownerID}}}

	switch {
	case f.StartDate != nil && f.EndDate != nil:
		s.clauses = append(s.clauses, Clause{Column: "expense_date", Op: OpBetween, Value: *f.StartDate, Upper: *f.EndDate})
	case f.StartDate != nil:
		s.clauses = append(s.clauses, Clause{Column: "expense_date", Op: OpGTE, Value: *f.StartDate})
	case f.EndDate != nil:
		s.clauses = append(s.clauses, Clause{Column: "expense_date", Op: OpLTE, Value: *f.EndDate})
	case f.Month != nil:
		start, end, err := monthBounds(*f.Month)
		if err != nil {
			return Spec{}, err
		}
		s.clauses = append(s.clauses, Clause{Column: "expense_date", Op: OpBetween, Value: start, Upper: end})
	}

	if f.Category != nil {
		s.clauses = append(s.clauses, Clause{Column: "category", Op: OpEq, Value: *f.Category})
	}
	if f.Currency != nil {
		s.clauses = append(s.clauses, Clause{Column: "currency", Op: OpEq, Value: *f.Currency})
	}
	if f.PaymentMethod != nil {
		s.clauses = append(s.clauses, Clause{Column: "payment_method", Op: OpEq, Value: *f.PaymentMethod})
	}

	return s, nil
}

// monthBounds expands a YYYY-MM string into the inclusive [first instant,
// last instant] range of that month in UTC.
func monthBounds(month string) (time.Time, time.Time, error) {
	parsed, err := time.ParseInLocation("2006-01", month, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid month format, expected YYYY-MM")
	}
	start := parsed
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end, nil
}
