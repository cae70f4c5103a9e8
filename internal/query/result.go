package query

import (
	"encoding/json"
	"slices"
)

// Params are the raw list parameters as bound from a request. Empty strings mean "not supplied".
type Params struct {
	PageIndex    int    `form:"pageIndex" json:"pageIndex"`
	PageSize     int    `form:"pageSize" json:"pageSize"`
	SortColumn   string `form:"sortColumn" json:"sortColumn,omitempty"`
	SortOrder    string `form:"sortOrder" json:"sortOrder,omitempty"`
	FilterColumn string `form:"filterColumn" json:"filterColumn,omitempty"`
	FilterQuery  string `form:"filterQuery" json:"filterQuery,omitempty"`
}

// DefaultPageSize is used when a request does not carry pageSize.
const DefaultPageSize = 10

// DefaultParams returns the parameters of a request that supplied none.
func DefaultParams() Params {
	return Params{PageIndex: 0, PageSize: DefaultPageSize}
}

// Result is one page of records plus the metadata a client needs to navigate.
// It is immutable. Create is the only constructor and hands it out by pointer;
// a failed Create returns nil.
type Result[T any] struct {
	data         []T
	pageIndex    int
	pageSize     int
	totalCount   int
	totalPages   int
	sortColumn   *string
	sortOrder    *string
	filterColumn *string
	filterQuery  *string
}

func newResult[T any](data []T, totalCount, pageIndex, pageSize int, sortColumn, sortOrder, filterColumn, filterQuery string) *Result[T] {
	if data == nil {
		data = []T{}
	}
	return &Result[T]{
		data:         data,
		pageIndex:    pageIndex,
		pageSize:     pageSize,
		totalCount:   totalCount,
		totalPages:   TotalPages(totalCount, pageSize),
		sortColumn:   optional(sortColumn),
		sortOrder:    optional(sortOrder),
		filterColumn: optional(filterColumn),
		filterQuery:  optional(filterQuery),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Data returns a copy of the page's records.
func (r *Result[T]) Data() []T { return slices.Clone(r.data) }

func (r *Result[T]) Len() int          { return len(r.data) }
func (r *Result[T]) PageIndex() int    { return r.pageIndex }
func (r *Result[T]) PageSize() int     { return r.pageSize }
func (r *Result[T]) TotalCount() int   { return r.totalCount }
func (r *Result[T]) TotalPages() int   { return r.totalPages }
func (r *Result[T]) HasNextPage() bool { return r.pageIndex+1 < r.totalPages }

func (r *Result[T]) HasPreviousPage() bool { return r.pageIndex > 0 }

// SortColumn, SortOrder, FilterColumn and FilterQuery return "" when absent.
func (r *Result[T]) SortColumn() string   { return deref(r.sortColumn) }
func (r *Result[T]) SortOrder() string    { return deref(r.sortOrder) }
func (r *Result[T]) FilterColumn() string { return deref(r.filterColumn) }
func (r *Result[T]) FilterQuery() string  { return deref(r.filterQuery) }

type resultJSON[T any] struct {
	Data            []T     `json:"data"`
	PageIndex       int     `json:"pageIndex"`
	PageSize        int     `json:"pageSize"`
	TotalCount      int     `json:"totalCount"`
	TotalPages      int     `json:"totalPages"`
	SortColumn      *string `json:"sortColumn"`
	SortOrder       *string `json:"sortOrder"`
	FilterColumn    *string `json:"filterColumn"`
	FilterQuery     *string `json:"filterQuery"`
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
}

// MarshalJSON renders the envelope as a flat object; absent parameters are null.
func (r *Result[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON[T]{
		Data:            r.data,
		PageIndex:       r.pageIndex,
		PageSize:        r.pageSize,
		TotalCount:      r.totalCount,
		TotalPages:      r.totalPages,
		SortColumn:      r.sortColumn,
		SortOrder:       r.sortOrder,
		FilterColumn:    r.filterColumn,
		FilterQuery:     r.filterQuery,
		HasNextPage:     r.HasNextPage(),
		HasPreviousPage: r.HasPreviousPage(),
	})
}
