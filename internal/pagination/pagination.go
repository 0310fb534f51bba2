package pagination

import (
	"math"

	apperrors "trackit/internal/errors"

	"gorm.io/gorm"
)

// PageRequest holds zero-based pagination parameters.
type PageRequest struct {
	Page int
	Size int
}

// Validate checks the page bounds before any query runs.
func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Page number cannot be negative")
	}
	if p.Size <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "Page size must be greater than zero")
	}
	return nil
}

// Offset returns the SQL OFFSET for the current page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// PageResponse wraps a paginated list of items with metadata.
type PageResponse[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// NewPageResponse creates a PageResponse from the given content and total
// count. Zero matching elements yields zero total pages.
func NewPageResponse[T any](content []T, page, size int, totalElements int64) PageResponse[T] {
	totalPages := int(math.Ceil(float64(totalElements) / float64(size)))
	if content == nil {
		content = []T{}
	}
	return PageResponse[T]{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: totalElements,
		TotalPages:    totalPages,
	}
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.Size)
	}
}
