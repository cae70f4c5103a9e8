package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapPgError(t *testing.T) {
	plain := errors.New("connection reset")

	tests := []struct {
		name    string
		err     error
		want    error
		wantMsg string
	}{
		{"nil", nil, nil, ""},
		{"not a pg error", plain, plain, "connection reset"},
		{"unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "countries_iso2_key"}, ErrAlreadyExists, "already exists: countries_iso2_key"},
		{"wrapped unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: pgerrcode.UniqueViolation}), ErrAlreadyExists, "already exists"},
		{"foreign key", &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation, ConstraintName: "cities_country_id_fkey"}, ErrConflict, "conflict: cities_country_id_fkey"},
		{"check", &pgconn.PgError{Code: pgerrcode.CheckViolation}, ErrConflict, "conflict"},
		{"not null", &pgconn.PgError{Code: pgerrcode.NotNullViolation}, ErrConflict, "conflict"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapPgError(tt.err)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
			assert.EqualError(t, got, tt.wantMsg)
		})
	}

	deadlock := &pgconn.PgError{Code: pgerrcode.DeadlockDetected}
	assert.Same(t, deadlock, MapPgError(deadlock))
}
