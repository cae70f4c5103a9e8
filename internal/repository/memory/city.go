package memory

import (
	"context"

	"github.com/maxviazov/worldcities-service/internal/model"
	"github.com/maxviazov/worldcities-service/internal/query"
	"github.com/maxviazov/worldcities-service/internal/repository"
)

type cityRepository struct{ s *Store }

// Source snapshots the joined city listing in id order.
func (r *cityRepository) Source() query.Source[model.CityDTO] {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rows := make([]model.CityDTO, 0, len(r.s.cities))
	for _, id := range sortedKeys(r.s.cities) {
		c := r.s.cities[id]
		rows = append(rows, model.CityDTO{
			ID:          c.ID,
			Name:        c.Name,
			Lat:         c.Lat,
			Lon:         c.Lon,
			CountryID:   c.CountryID,
			CountryName: r.s.countries[c.CountryID].Name,
		})
	}
	return query.FromSlice(rows)
}

func (r *cityRepository) GetByID(ctx context.Context, id int64) (model.City, error) {
	if err := ctx.Err(); err != nil {
		return model.City{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.cities[id]
	if !ok {
		return model.City{}, repository.ErrNotFound
	}
	return c, nil
}

func (r *cityRepository) Create(ctx context.Context, c model.City) (model.City, error) {
	if err := ctx.Err(); err != nil {
		return model.City{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.countries[c.CountryID]; !ok {
		return model.City{}, repository.ErrConflict
	}
	r.s.nextCity++
	c.ID = r.s.nextCity
	c.CreatedAt = r.s.now()
	c.UpdatedAt = c.CreatedAt
	r.s.cities[c.ID] = c
	r.s.record(ctx, func() { delete(r.s.cities, c.ID) })
	return c, nil
}

func (r *cityRepository) Update(ctx context.Context, c model.City) (model.City, error) {
	if err := ctx.Err(); err != nil {
		return model.City{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.cities[c.ID]
	if !ok {
		return model.City{}, repository.ErrNotFound
	}
	if _, ok := r.s.countries[c.CountryID]; !ok {
		return model.City{}, repository.ErrConflict
	}
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = r.s.now()
	r.s.cities[c.ID] = c
	r.s.record(ctx, func() { r.s.cities[cur.ID] = cur })
	return c, nil
}

func (r *cityRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.cities[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.s.cities, id)
	r.s.record(ctx, func() { r.s.cities[id] = cur })
	return nil
}

func (r *cityRepository) IsDupe(ctx context.Context, c model.City) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, o := range r.s.cities {
		if o.ID != c.ID && o.Name == c.Name && o.Lat == c.Lat && o.Lon == c.Lon && o.CountryID == c.CountryID {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.CityRepository = (*cityRepository)(nil)
