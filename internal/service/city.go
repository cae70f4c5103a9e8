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

// cityService holds city use-case logic: validation + orchestration, no transport / SQL details.
type cityService struct {
	repo      repository.CityRepository
	countries repository.CountryRepository
	log       zerolog.Logger
}

func NewCityService(repo repository.CityRepository, countries repository.CountryRepository, logger zerolog.Logger) CityService {
	l := logger.With().Str("module", "service").Str("component", "city").Logger()
	return &cityService{repo: repo, countries: countries, log: l}
}

func (s *cityService) ListCities(ctx context.Context, p query.Params) (*query.Result[model.CityDTO], error) {
	start := time.Now()
	res, err := query.Create(ctx, s.repo.Source(), model.CitySchema, p)
	if err != nil {
		ev := s.log.Error()
		if isClientQueryError(err) {
			ev = s.log.Debug()
		}
		ev.Err(err).Interface("params", p).Msg("list cities failed")
		return nil, err
	}
	s.log.Debug().Dur("took", time.Since(start)).Int("total", res.TotalCount()).Msg("cities listed")
	return res, nil
}

func (s *cityService) GetCity(ctx context.Context, id int64) (model.City, error) {
	if err := newInvalidInput(validateID("id", id)); err != nil {
		return model.City{}, err
	}
	return s.repo.GetByID(ctx, id)
}

// checkCountry turns a dangling country reference into a field error rather than a 409.
func (s *cityService) checkCountry(ctx context.Context, countryID int64) ([]FieldError, error) {
	ok, err := s.countries.Exists(ctx, countryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []FieldError{{Field: "countryId", Message: "country does not exist"}}, nil
	}
	return nil, nil
}

func (s *cityService) CreateCity(ctx context.Context, c model.City) (model.City, error) {
	start := time.Now()
	c.ID = 0
	ferrs := normalizeCity(&c)
	if len(ferrs) == 0 {
		more, err := s.checkCountry(ctx, c.CountryID)
		if err != nil {
			s.log.Error().Err(err).Int64("country_id", c.CountryID).Msg("country lookup failed")
			return model.City{}, err
		}
		ferrs = more
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("city validation failed")
		return model.City{}, err
	}

	out, err := s.repo.Create(ctx, c)
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Str("name", c.Name).Msg("create city failed")
		return model.City{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("city_id", out.ID).Msg("city created")
	return out, nil
}

func (s *cityService) UpdateCity(ctx context.Context, c model.City) (model.City, error) {
	ferrs := append(validateID("id", c.ID), normalizeCity(&c)...)
	if len(ferrs) == 0 {
		more, err := s.checkCountry(ctx, c.CountryID)
		if err != nil {
			return model.City{}, err
		}
		ferrs = more
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Int64("city_id", c.ID).Interface("field_errors", ferrs).Msg("city validation failed")
		return model.City{}, err
	}

	out, err := s.repo.Update(ctx, c)
	if err != nil {
		s.log.Error().Err(err).Int64("city_id", c.ID).Msg("update city failed")
		return model.City{}, err
	}
	s.log.Info().Int64("city_id", out.ID).Msg("city updated")
	return out, nil
}

func (s *cityService) DeleteCity(ctx context.Context, id int64) error {
	if err := newInvalidInput(validateID("id", id)); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error().Err(err).Int64("city_id", id).Msg("delete city failed")
		return err
	}
	s.log.Info().Int64("city_id", id).Msg("city deleted")
	return nil
}

// IsDupeCity reports whether a city other than c itself already has c's name,
// coordinates and country. Input is compared as sent, after trimming the name.
func (s *cityService) IsDupeCity(ctx context.Context, c model.City) (bool, error) {
	c.Name = strings.TrimSpace(c.Name)
	return s.repo.IsDupe(ctx, c)
}
