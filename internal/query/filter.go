package query

import "strings"

// Filter is a validated prefix-match predicate: the field's text must start
// with Prefix. Matching is case-sensitive and byte-wise.
type Filter[T any] struct {
	Field  Field[T]
	Prefix string
}

// Match reports whether rec satisfies the filter.
func (f Filter[T]) Match(rec T) bool {
	return strings.HasPrefix(f.Field.Text(rec), f.Prefix)
}

// BuildFilter resolves a requested filter. The column is validated whenever it
// is supplied, even with an empty query; an empty column or query yields nil.
func BuildFilter[T any](schema *Schema[T], column, prefix string) (*Filter[T], error) {
	if column == "" {
		return nil, nil
	}
	f, err := schema.RequireField(column)
	if err != nil {
		return nil, err
	}
	if prefix == "" {
		return nil, nil
	}
	return &Filter[T]{Field: f, Prefix: prefix}, nil
}
