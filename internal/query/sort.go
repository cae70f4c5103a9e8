package query

import "strings"

// Direction is a sort direction.
type Direction int

const (
	Descending Direction = iota
	Ascending
)

func (d Direction) String() string {
	if d == Ascending {
		return "ASC"
	}
	return "DESC"
}

// ParseDirection maps a client sort order to a Direction. Only a case-insensitive
// "asc" selects ascending order; everything else, the empty string included, is
// descending.
func ParseDirection(order string) Direction {
	if strings.EqualFold(order, "asc") {
		return Ascending
	}
	return Descending
}

// Sort is a validated ordering instruction.
type Sort[T any] struct {
	Field     Field[T]
	Direction Direction
}

// Compare orders a and b by the sort field in the sort direction.
func (s Sort[T]) Compare(a, b T) int {
	c := s.Field.Compare(a, b)
	if s.Direction == Descending {
		return -c
	}
	return c
}

// BuildSort resolves a requested sort. An empty column means no ordering and
// returns nil; an undeclared column is an *UnknownFieldError.
func BuildSort[T any](schema *Schema[T], column, order string) (*Sort[T], error) {
	if column == "" {
		return nil, nil
	}
	f, err := schema.RequireField(column)
	if err != nil {
		return nil, err
	}
	return &Sort[T]{Field: f, Direction: ParseDirection(order)}, nil
}
