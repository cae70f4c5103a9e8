// Package query shapes list requests: it validates client-supplied sort and filter
// columns against a declared per-type schema, composes filtering, ordering and an
// offset/limit window over a Source, and packages the page into an immutable Result.
//
// Field names coming from the client are only ever used as lookup keys into a Schema.
// Whatever reaches a storage backend (column identifiers, comparators) comes from the
// registry itself, never from the request.
package query

import (
	"cmp"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind is the value type behind a Field. SQL sources use it to render the
// column's text form the same way Field.Text does.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
)

// Field describes one sortable/filterable attribute of a record type.
type Field[T any] struct {
	// Name is the canonical, client-facing field name.
	Name string
	// Column is the storage identifier used by SQL-backed sources.
	Column string
	Kind   Kind
	// Compare orders two records by this field.
	Compare func(a, b T) int
	// Text renders the field for prefix matching.
	Text func(T) string
}

// StringField declares a text attribute.
func StringField[T any](name, column string, get func(T) string) Field[T] {
	return Field[T]{
		Name:    name,
		Column:  column,
		Compare: func(a, b T) int { return strings.Compare(get(a), get(b)) },
		Text:    get,
	}
}

// IntField declares an integer attribute; prefix filters match its decimal form.
func IntField[T any](name, column string, get func(T) int64) Field[T] {
	return Field[T]{
		Name:    name,
		Column:  column,
		Kind:    KindInt,
		Compare: func(a, b T) int { return cmp.Compare(get(a), get(b)) },
		Text:    func(v T) string { return strconv.FormatInt(get(v), 10) },
	}
}

// FloatField declares a floating point attribute; prefix filters match its shortest decimal form.
func FloatField[T any](name, column string, get func(T) float64) Field[T] {
	return Field[T]{
		Name:    name,
		Column:  column,
		Kind:    KindFloat,
		Compare: func(a, b T) int { return cmp.Compare(get(a), get(b)) },
		Text:    func(v T) string { return strconv.FormatFloat(get(v), 'f', -1, 64) },
	}
}

// Schema is the registry of fields a record type exposes to list requests.
// It is built once at package init and is safe for concurrent reads.
type Schema[T any] struct {
	name   string
	key    Field[T]
	fields map[string]Field[T]
}

// NewSchema registers fields for a record type. The first field is the key used
// as a deterministic tiebreaker by ordered sources. It panics on an empty or
// duplicate name since schemas are declared statically.
func NewSchema[T any](name string, key Field[T], others ...Field[T]) *Schema[T] {
	s := &Schema[T]{name: name, key: key, fields: make(map[string]Field[T], len(others)+1)}
	for _, f := range append([]Field[T]{key}, others...) {
		if f.Name == "" || f.Column == "" || f.Compare == nil || f.Text == nil {
			panic(fmt.Sprintf("query: schema %s: incomplete field %q", name, f.Name))
		}
		k := strings.ToLower(f.Name)
		if _, dup := s.fields[k]; dup {
			panic(fmt.Sprintf("query: schema %s: duplicate field %q", name, f.Name))
		}
		s.fields[k] = f
	}
	return s
}

// Name returns the record type name the schema was declared for.
func (s *Schema[T]) Name() string { return s.name }

// Key returns the key field.
func (s *Schema[T]) Key() Field[T] { return s.key }

// Lookup finds a field by case-insensitive name.
func (s *Schema[T]) Lookup(name string) (Field[T], bool) {
	f, ok := s.fields[strings.ToLower(name)]
	return f, ok
}

// IsValidField reports whether name is a declared field (silent mode).
func (s *Schema[T]) IsValidField(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// RequireField is the strict variant of IsValidField.
func (s *Schema[T]) RequireField(name string) (Field[T], error) {
	f, ok := s.Lookup(name)
	if !ok {
		return Field[T]{}, &UnknownFieldError{Field: name}
	}
	return f, nil
}

// Fields returns the canonical field names in lexical order.
func (s *Schema[T]) Fields() []string {
	out := make([]string, 0, len(s.fields))
	for _, f := range s.fields {
		out = append(out, f.Name)
	}
	sort.Strings(out)
	return out
}
