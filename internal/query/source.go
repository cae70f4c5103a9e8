package query

import (
	"context"
	"slices"
)

// Source is a queryable, possibly remote, sequence of records. Where and OrderBy
// return derived sources and never mutate the receiver. Count and Fetch each hit
// the backing store; they are not guaranteed to observe the same snapshot.
type Source[T any] interface {
	Where(f Filter[T]) Source[T]
	OrderBy(s Sort[T]) Source[T]
	Count(ctx context.Context) (int, error)
	Fetch(ctx context.Context, w Window) ([]T, error)
}

// sliceSource is an in-memory Source over a snapshot of records.
type sliceSource[T any] struct {
	items   []T
	filters []Filter[T]
	sort    *Sort[T]
}

// FromSlice returns a Source over a copy of items. Without an ordering, records
// come back in slice order.
func FromSlice[T any](items []T) Source[T] {
	return &sliceSource[T]{items: slices.Clone(items)}
}

func (s *sliceSource[T]) Where(f Filter[T]) Source[T] {
	out := *s
	out.filters = append(slices.Clip(s.filters), f)
	return &out
}

func (s *sliceSource[T]) OrderBy(o Sort[T]) Source[T] {
	out := *s
	out.sort = &o
	return &out
}

func (s *sliceSource[T]) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(s.matching()), nil
}

func (s *sliceSource[T]) Fetch(ctx context.Context, w Window) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows := s.matching()
	if s.sort != nil {
		slices.SortStableFunc(rows, s.sort.Compare)
	}
	start, end := w.Bounds(len(rows))
	return slices.Clone(rows[start:end]), nil
}

func (s *sliceSource[T]) matching() []T {
	out := make([]T, 0, len(s.items))
next:
	for _, it := range s.items {
		for _, f := range s.filters {
			if !f.Match(it) {
				continue next
			}
		}
		out = append(out, it)
	}
	return out
}
