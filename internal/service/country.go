package service

import (
	"context"
	"strings"
	"time"

	"github.com/maxviazov/worldcities-service/internal/model"
	"github.com/maxviazov/worldcities-service/internal/query"
	"github.com/maxviazov/worldcities-service/internal/repository"
	"github.com/rs/zerolog"
)

type countryService struct {
	repo repository.CountryRepository
	tx   repository.TxManager
	log  zerolog.Logger
}

func NewCountryService(repo repository.CountryRepository, tx repository.TxManager, logger zerolog.Logger) CountryService {
	l := logger.With().Str("module", "service").Str("component", "country").Logger()
	return &countryService{repo: repo, tx: tx, log: l}
}

func (s *countryService) ListCountries(ctx context.Context, p query.Params) (*query.Result[model.CountryDTO], error) {
	start := time.Now()
	res, err := query.Create(ctx, s.repo.Source(), model.CountrySchema, p)
	if err != nil {
		ev := s.log.Error()
		if isClientQueryError(err) {
			ev = s.log.Debug()
		}
		ev.Err(err).Interface("params", p).Msg("list countries failed")
		return nil, err
	}
	s.log.Debug().Dur("took", time.Since(start)).Int("total", res.TotalCount()).Msg("countries listed")
	return res, nil
}

func (s *countryService) GetCountry(ctx context.Context, id int64) (model.Country, error) {
	if err := newInvalidInput(validateID("id", id)); err != nil {
		return model.Country{}, err
	}
	return s.repo.GetByID(ctx, id)
}

func (s *countryService) CreateCountry(ctx context.Context, c model.Country) (model.Country, error) {
	start := time.Now()
	c.ID = 0
	if ferrs := normalizeCountry(&c); len(ferrs) > 0 {
		s.log.Debug().Interface("field_errors", ferrs).Msg("country validation failed")
		return model.Country{}, newInvalidInput(ferrs)
	}

	// unique constraints on name, iso2 and iso3 surface as repository.ErrAlreadyExists
	out, err := s.repo.Create(ctx, c)
	if err != nil {
		s.log.Error().Err(err).Str("name", c.Name).Msg("create country failed")
		return model.Country{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("country_id", out.ID).Msg("country created")
	return out, nil
}

// UpdateCountry checks every unique field before writing, all in one
// transaction. A clash that races the checks is still rejected by the unique
// constraints and surfaces as repository.ErrAlreadyExists.
func (s *countryService) UpdateCountry(ctx context.Context, c model.Country) (model.Country, error) {
	ferrs := append(validateID("id", c.ID), normalizeCountry(&c)...)
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Int64("country_id", c.ID).Interface("field_errors", ferrs).Msg("country validation failed")
		return model.Country{}, err
	}

	var out model.Country
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, f := range [...]struct{ field, value string }{{"name", c.Name}, {"iso2", c.ISO2}, {"iso3", c.ISO3}} {
			dupe, err := s.repo.IsDupeField(ctx, f.field, f.value, c.ID)
			if err != nil {
				return err
			}
			if dupe {
				s.log.Debug().Int64("country_id", c.ID).Str("field", f.field).Msg("country field already taken")
				return repository.ErrAlreadyExists
			}
		}
		var err error
		out, err = s.repo.Update(ctx, c)
		return err
	})
	if err != nil {
		s.log.Error().Err(err).Int64("country_id", c.ID).Msg("update country failed")
		return model.Country{}, err
	}
	s.log.Info().Int64("country_id", out.ID).Msg("country updated")
	return out, nil
}

func (s *countryService) DeleteCountry(ctx context.Context, id int64) error {
	if err := newInvalidInput(validateID("id", id)); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Int64("country_id", id).Msg("delete country failed")
		return err
	}
	s.log.Info().Int64("country_id", id).Msg("country deleted")
	return nil
}

func (s *countryService) IsDupeCountry(ctx context.Context, c model.Country) (bool, error) {
	normalizeCountry(&c)
	return s.repo.IsDupe(ctx, c)
}

// IsDupeField checks one of name, iso2 or iso3 (case-insensitive field name)
// against every country except countryID. The value is normalized the way it
// would be stored.
func (s *countryService) IsDupeField(ctx context.Context, fieldName, fieldValue string, countryID int64) (bool, error) {
	field := strings.ToLower(strings.TrimSpace(fieldName))
	if _, ok := model.CountryUniqueFields[field]; !ok {
		return false, newInvalidInput([]FieldError{{Field: "fieldName", Message: "must be one of name, iso2, iso3"}})
	}
	return s.repo.IsDupeField(ctx, field, normalizeCountryField(field, fieldValue), countryID)
}
