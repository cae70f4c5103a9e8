package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinels returned by every CityRepository and CountryRepository backend.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("conflict")
)

// MapPgError maps constraint violations from the worldcities schema onto the
// sentinels, keeping the constraint name in the message. Unique indexes on
// country name, iso2 and iso3 give ErrAlreadyExists; the cities.country_id
// foreign key and the column checks give ErrConflict. Other errors are
// returned unchanged.
func MapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return constraintErr(ErrAlreadyExists, pgErr)
	case pgerrcode.ForeignKeyViolation, pgerrcode.CheckViolation, pgerrcode.NotNullViolation:
		return constraintErr(ErrConflict, pgErr)
	}
	return err
}

func constraintErr(sentinel error, pgErr *pgconn.PgError) error {
	if pgErr.ConstraintName == "" {
		return sentinel
	}
	return fmt.Errorf("%w: %s", sentinel, pgErr.ConstraintName)
}
