package query

import (
	"errors"
	"fmt"
)

// Marker errors for list parameter validation; typed errors below unwrap to them.
var (
	ErrUnknownField     = errors.New("unknown field")
	ErrInvalidPageSize  = errors.New("invalid page size")
	ErrInvalidPageIndex = errors.New("invalid page index")
)

// UnknownFieldError reports a sort or filter column that is not declared on the record schema.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("field %q does not exist", e.Field)
}

func (e *UnknownFieldError) Unwrap() error { return ErrUnknownField }

// InvalidPageSizeError is returned for a page size <= 0.
type InvalidPageSizeError struct {
	PageSize int
}

func (e *InvalidPageSizeError) Error() string {
	return fmt.Sprintf("page size must be > 0, got %d", e.PageSize)
}

func (e *InvalidPageSizeError) Unwrap() error { return ErrInvalidPageSize }

// InvalidPageIndexError is returned for a negative page index.
type InvalidPageIndexError struct {
	PageIndex int
}

func (e *InvalidPageIndexError) Error() string {
	return fmt.Sprintf("page index must be >= 0, got %d", e.PageIndex)
}

func (e *InvalidPageIndexError) Unwrap() error { return ErrInvalidPageIndex }
