package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/worldcities-service/internal/query"
	"github.com/maxviazov/worldcities-service/internal/repository"
)

// pgSource is a query.Source over a listing relation. Column identifiers come
// only from the schema registry and are quoted through pgx.Identifier; filter
// values are always bound parameters.
type pgSource[T any] struct {
	pool    *pgxpool.Pool
	from    string // relation or parenthesised subquery with alias
	columns []string
	key     string
	filters []query.Filter[T]
	sort    *query.Sort[T]
}

func newSource[T any](pool *pgxpool.Pool, from string, key string, columns ...string) *pgSource[T] {
	return &pgSource[T]{pool: pool, from: from, key: key, columns: columns}
}

func (s *pgSource[T]) Where(f query.Filter[T]) query.Source[T] {
	out := *s
	out.filters = append(out.filters[:len(out.filters):len(out.filters)], f)
	return &out
}

func (s *pgSource[T]) OrderBy(o query.Sort[T]) query.Source[T] {
	out := *s
	out.sort = &o
	return &out
}

func (s *pgSource[T]) Count(ctx context.Context) (int, error) {
	if err := ensurePool(s.pool); err != nil {
		return 0, err
	}
	sql, args := buildCountSQL(s.from, s.filters)
	var n int
	if err := getQ(ctx, s.pool).QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, repository.MapPgError(err)
	}
	return n, nil
}

func (s *pgSource[T]) Fetch(ctx context.Context, w query.Window) ([]T, error) {
	if err := ensurePool(s.pool); err != nil {
		return nil, err
	}
	sql, args := buildFetchSQL(s.from, s.columns, s.key, s.filters, s.sort, w)
	rows, err := getQ(ctx, s.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	return out, nil
}

func ident(col string) string { return pgx.Identifier{col}.Sanitize() }

// textExpr renders a column as text the way query.Field.Text does. float8::text
// switches to exponent notation for small magnitudes (1e-05); numeric never does.
func textExpr(col string, kind query.Kind) string {
	if kind == query.KindFloat {
		return ident(col) + "::numeric::text"
	}
	return ident(col) + "::text"
}

// whereClause renders filters as starts_with predicates over the column's text
// form, matching query.Filter semantics (case-sensitive prefix of the rendered value).
func whereClause[T any](filters []query.Filter[T], args []any) (string, []any) {
	if len(filters) == 0 {
		return "", args
	}
	parts := make([]string, 0, len(filters))
	for _, f := range filters {
		args = append(args, f.Prefix)
		parts = append(parts, fmt.Sprintf("starts_with(%s, $%d)", textExpr(f.Field.Column, f.Field.Kind), len(args)))
	}
	return " WHERE " + strings.Join(parts, " AND "), args
}

func buildCountSQL[T any](from string, filters []query.Filter[T]) (string, []any) {
	where, args := whereClause(filters, nil)
	return "SELECT COUNT(*) FROM " + from + where, args
}

func buildFetchSQL[T any](from string, columns []string, key string, filters []query.Filter[T], sort *query.Sort[T], w query.Window) (string, []any) {
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = ident(c)
	}
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(cols, ", "))
	b.WriteString(" FROM ")
	b.WriteString(from)

	where, args := whereClause(filters, nil)
	b.WriteString(where)

	// key tiebreak keeps paging deterministic when the sort column has duplicates
	b.WriteString(" ORDER BY ")
	if sort != nil && sort.Field.Column != key {
		fmt.Fprintf(&b, "%s %s, ", ident(sort.Field.Column), sort.Direction)
	}
	dir := query.Ascending
	if sort != nil && sort.Field.Column == key {
		dir = sort.Direction
	}
	fmt.Fprintf(&b, "%s %s", ident(key), dir)

	args = append(args, w.Limit, w.Offset)
	fmt.Fprintf(&b, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return b.String(), args
}

var _ query.Source[struct{}] = (*pgSource[struct{}])(nil)
