package request

import (
	"github.com/shareit/shareit-backend/internal/pkg/apperror"
)

const (
	// UserIDHeader carries the caller's identity on every authenticated route.
	UserIDHeader = "X-Sharer-User-Id"

	DefaultFrom = 0
	DefaultSize = 16
)

var (
	ErrNegativeFrom    = apperror.New(apperror.KindValidation, "from must not be negative")
	ErrNonPositiveSize = apperror.New(apperror.KindValidation, "size must be positive")
)

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID int64 `uri:"id" binding:"required,gt=0"`
}

// PageParams is the offset based page window shared by list endpoints.
type PageParams struct {
	From int `form:"from,default=0"`
	Size int `form:"size,default=16"`
}

// NewPage returns a page window without validating it.
func NewPage(from, size int) PageParams {
	return PageParams{From: from, Size: size}
}

// Validate checks from >= 0 and size > 0.
func (p PageParams) Validate() error {
	if p.From < 0 {
		return ErrNegativeFrom
	}
	if p.Size <= 0 {
		return ErrNonPositiveSize
	}
	return nil
}

// Offset returns the first row of the page that contains From.
// From is rounded down to a multiple of Size.
func (p PageParams) Offset() int {
	return (p.From / p.Size) * p.Size
}

// Limit returns the page length.
func (p PageParams) Limit() int {
	return p.Size
}
