package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/worldcities-service/internal/model"
	"github.com/maxviazov/worldcities-service/internal/query"
	"github.com/maxviazov/worldcities-service/internal/repository"
)

// countryList backs CountrySchema. tot_cities is computed per row so it can be sorted and filtered.
const countryList = `(SELECT co.id, co.name, co.iso2, co.iso3,
	(SELECT COUNT(*) FROM cities c WHERE c.country_id = co.id) AS tot_cities
	FROM countries co) AS country_list`

const countryColumns = `id, name, iso2, iso3, created_at, updated_at`

type countryRepository struct{ pool *pgxpool.Pool }

func NewCountryRepository(pool *pgxpool.Pool) repository.CountryRepository {
	return &countryRepository{pool: pool}
}

func scanCountry(row pgx.Row) (model.Country, error) {
	var out model.Country
	if err := row.Scan(&out.ID, &out.Name, &out.ISO2, &out.ISO3, &out.CreatedAt, &out.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Country{}, repository.ErrNotFound
		}
		return model.Country{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *countryRepository) Source() query.Source[model.CountryDTO] {
	return newSource[model.CountryDTO](r.pool, countryList, model.CountrySchema.Key().Column,
		"id", "name", "iso2", "iso3", "tot_cities")
}

func (r *countryRepository) GetByID(ctx context.Context, id int64) (model.Country, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Country{}, err
	}
	return scanCountry(getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT `+countryColumns+` FROM countries WHERE id = $1`, id))
}

func (r *countryRepository) Create(ctx context.Context, c model.Country) (model.Country, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Country{}, err
	}
	return scanCountry(getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO countries (name, iso2, iso3) VALUES ($1, $2, $3)
		 RETURNING `+countryColumns,
		c.Name, c.ISO2, c.ISO3,
	))
}

func (r *countryRepository) Update(ctx context.Context, c model.Country) (model.Country, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Country{}, err
	}
	return scanCountry(getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE countries SET name = $1, iso2 = $2, iso3 = $3, updated_at = now()
		 WHERE id = $4
		 RETURNING `+countryColumns,
		c.Name, c.ISO2, c.ISO3, c.ID,
	))
}

// Delete removes the country; its cities go with it (ON DELETE CASCADE).
func (r *countryRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, `DELETE FROM countries WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *countryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	var exists bool
	err := getQ(ctx, r.pool).QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM countries WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, repository.MapPgError(err)
	}
	return exists, nil
}

func (r *countryRepository) IsDupe(ctx context.Context, c model.Country) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	var dupe bool
	err := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM countries
		 WHERE name = $1 AND iso2 = $2 AND iso3 = $3 AND id <> $4)`,
		c.Name, c.ISO2, c.ISO3, c.ID,
	).Scan(&dupe)
	if err != nil {
		return false, repository.MapPgError(err)
	}
	return dupe, nil
}

func (r *countryRepository) IsDupeField(ctx context.Context, field, value string, excludeID int64) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	col, ok := model.CountryUniqueFields[field]
	if !ok {
		return false, fmt.Errorf("country field %q is not checkable", field)
	}
	var dupe bool
	err := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM countries WHERE `+ident(col)+` = $1 AND id <> $2)`,
		value, excludeID,
	).Scan(&dupe)
	if err != nil {
		return false, repository.MapPgError(err)
	}
	return dupe, nil
}

var _ repository.CountryRepository = (*countryRepository)(nil)
