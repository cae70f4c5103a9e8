package query

import "math"

// Window is an offset/limit slice of an ordered sequence.
type Window struct {
	Offset int
	Limit  int
}

// NewWindow converts a zero-based page index and page size into a window.
// Sizes are not capped here; callers that need limits enforce them upstream.
func NewWindow(pageIndex, pageSize int) (Window, error) {
	if pageSize <= 0 {
		return Window{}, &InvalidPageSizeError{PageSize: pageSize}
	}
	if pageIndex < 0 {
		return Window{}, &InvalidPageIndexError{PageIndex: pageIndex}
	}
	offset := math.MaxInt
	if pageIndex <= math.MaxInt/pageSize {
		offset = pageIndex * pageSize
	}
	return Window{Offset: offset, Limit: pageSize}, nil
}

// Bounds clips the window to a sequence of length n and returns [start, end).
func (w Window) Bounds(n int) (int, int) {
	if w.Offset >= n {
		return n, n
	}
	end := n
	if w.Limit < n-w.Offset {
		end = w.Offset + w.Limit
	}
	return w.Offset, end
}

// TotalPages returns ceil(totalCount / pageSize). pageSize must be positive.
func TotalPages(totalCount, pageSize int) int {
	pages := totalCount / pageSize
	if totalCount%pageSize != 0 {
		pages++
	}
	return pages
}
