package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/worldcities-service/internal/model"
	"github.com/maxviazov/worldcities-service/internal/query"
	"github.com/maxviazov/worldcities-service/internal/repository"
)

// cityList is the listing relation behind CitySchema; its columns match model.CityDTO db tags.
const cityList = `(SELECT c.id, c.name, c.lat, c.lon, c.country_id, co.name AS country_name
	FROM cities c JOIN countries co ON co.id = c.country_id) AS city_list`

const cityColumns = `id, name, lat, lon, country_id, created_at, updated_at`

type cityRepository struct{ pool *pgxpool.Pool }

func NewCityRepository(pool *pgxpool.Pool) repository.CityRepository {
	return &cityRepository{pool: pool}
}

func scanCity(row pgx.Row) (model.City, error) {
	var out model.City
	err := row.Scan(&out.ID, &out.Name, &out.Lat, &out.Lon, &out.CountryID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.City{}, repository.ErrNotFound
		}
		return model.City{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *cityRepository) Source() query.Source[model.CityDTO] {
	return newSource[model.CityDTO](r.pool, cityList, model.CitySchema.Key().Column,
		"id", "name", "lat", "lon", "country_id", "country_name")
}

func (r *cityRepository) GetByID(ctx context.Context, id int64) (model.City, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.City{}, err
	}
	return scanCity(getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT `+cityColumns+` FROM cities WHERE id = $1`, id))
}

func (r *cityRepository) Create(ctx context.Context, c model.City) (model.City, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.City{}, err
	}
	return scanCity(getQ(ctx, r.pool).QueryRow(ctx,
		`INSERT INTO cities (name, lat, lon, country_id) VALUES ($1, $2, $3, $4)
		 RETURNING `+cityColumns,
		c.Name, c.Lat, c.Lon, c.CountryID,
	))
}

func (r *cityRepository) Update(ctx context.Context, c model.City) (model.City, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.City{}, err
	}
	return scanCity(getQ(ctx, r.pool).QueryRow(ctx,
		`UPDATE cities SET name = $1, lat = $2, lon = $3, country_id = $4, updated_at = now()
		 WHERE id = $5
		 RETURNING `+cityColumns,
		c.Name, c.Lat, c.Lon, c.CountryID, c.ID,
	))
}

func (r *cityRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	tag, err := getQ(ctx, r.pool).Exec(ctx, `DELETE FROM cities WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *cityRepository) IsDupe(ctx context.Context, c model.City) (bool, error) {
	if err := ensurePool(r.pool); err != nil {
		return false, err
	}
	var dupe bool
	err := getQ(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM cities
		 WHERE name = $1 AND lat = $2 AND lon = $3 AND country_id = $4 AND id <> $5)`,
		c.Name, c.Lat, c.Lon, c.CountryID, c.ID,
	).Scan(&dupe)
	if err != nil {
		return false, repository.MapPgError(err)
	}
	return dupe, nil
}

var _ repository.CityRepository = (*cityRepository)(nil)
