package memory

import (
	"context"
	"fmt"

	"github.com/maxviazov/worldcities-service/internal/model"
	"github.com/maxviazov/worldcities-service/internal/query"
	"github.com/maxviazov/worldcities-service/internal/repository"
)

type countryRepository struct{ s *Store }

func (r *countryRepository) Source() query.Source[model.CountryDTO] {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	tot := make(map[int64]int64, len(r.s.countries))
	for _, c := range r.s.cities {
		tot[c.CountryID]++
	}
	rows := make([]model.CountryDTO, 0, len(r.s.countries))
	for _, id := range sortedKeys(r.s.countries) {
		c := r.s.countries[id]
		rows = append(rows, model.CountryDTO{
			ID:        c.ID,
			Name:      c.Name,
			ISO2:      c.ISO2,
			ISO3:      c.ISO3,
			TotCities: tot[c.ID],
		})
	}
	return query.FromSlice(rows)
}

func (r *countryRepository) GetByID(ctx context.Context, id int64) (model.Country, error) {
	if err := ctx.Err(); err != nil {
		return model.Country{}, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.countries[id]
	if !ok {
		return model.Country{}, repository.ErrNotFound
	}
	return c, nil
}

// clashes reports whether c collides with another country on a unique column. Caller holds mu.
func (r *countryRepository) clashes(c model.Country) bool {
	for _, o := range r.s.countries {
		if o.ID == c.ID {
			continue
		}
		if o.Name == c.Name || o.ISO2 == c.ISO2 || o.ISO3 == c.ISO3 {
			return true
		}
	}
	return false
}

func (r *countryRepository) Create(ctx context.Context, c model.Country) (model.Country, error) {
	if err := ctx.Err(); err != nil {
		return model.Country{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = 0
	if r.clashes(c) {
		return model.Country{}, repository.ErrAlreadyExists
	}
	r.s.nextCountry++
	c.ID = r.s.nextCountry
	c.CreatedAt = r.s.now()
	c.UpdatedAt = c.CreatedAt
	r.s.countries[c.ID] = c
	r.s.record(ctx, func() { delete(r.s.countries, c.ID) })
	return c, nil
}

func (r *countryRepository) Update(ctx context.Context, c model.Country) (model.Country, error) {
	if err := ctx.Err(); err != nil {
		return model.Country{}, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.countries[c.ID]
	if !ok {
		return model.Country{}, repository.ErrNotFound
	}
	if r.clashes(c) {
		return model.Country{}, repository.ErrAlreadyExists
	}
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = r.s.now()
	r.s.countries[c.ID] = c
	r.s.record(ctx, func() { r.s.countries[cur.ID] = cur })
	return c, nil
}

// Delete removes the country and its cities.
func (r *countryRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.countries[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.s.countries, id)
	var gone []model.City
	for cid, c := range r.s.cities {
		if c.CountryID == id {
			gone = append(gone, c)
			delete(r.s.cities, cid)
		}
	}
	r.s.record(ctx, func() {
		r.s.countries[id] = cur
		for _, c := range gone {
			r.s.cities[c.ID] = c
		}
	})
	return nil
}

func (r *countryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.countries[id]
	return ok, nil
}

func (r *countryRepository) IsDupe(ctx context.Context, c model.Country) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, o := range r.s.countries {
		if o.ID != c.ID && o.Name == c.Name && o.ISO2 == c.ISO2 && o.ISO3 == c.ISO3 {
			return true, nil
		}
	}
	return false, nil
}

func (r *countryRepository) IsDupeField(ctx context.Context, field, value string, excludeID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var get func(model.Country) string
	switch field {
	case "name":
		get = func(c model.Country) string { return c.Name }
	case "iso2":
		get = func(c model.Country) string { return c.ISO2 }
	case "iso3":
		get = func(c model.Country) string { return c.ISO3 }
	default:
		return false, fmt.Errorf("country field %q is not checkable", field)
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, o := range r.s.countries {
		if o.ID != excludeID && get(o) == value {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.CountryRepository = (*countryRepository)(nil)
