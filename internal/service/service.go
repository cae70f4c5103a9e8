// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/worldcities-service/internal/model"
	"github.com/maxviazov/worldcities-service/internal/query"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidInputError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// CityService defines city use cases.
type CityService interface {
	ListCities(ctx context.Context, p query.Params) (*query.Result[model.CityDTO], error)
	GetCity(ctx context.Context, id int64) (model.City, error)
	CreateCity(ctx context.Context, c model.City) (model.City, error)
	UpdateCity(ctx context.Context, c model.City) (model.City, error)
	DeleteCity(ctx context.Context, id int64) error
	IsDupeCity(ctx context.Context, c model.City) (bool, error)
}

// CountryService defines country use cases.
type CountryService interface {
	ListCountries(ctx context.Context, p query.Params) (*query.Result[model.CountryDTO], error)
	GetCountry(ctx context.Context, id int64) (model.Country, error)
	CreateCountry(ctx context.Context, c model.Country) (model.Country, error)
	UpdateCountry(ctx context.Context, c model.Country) (model.Country, error)
	DeleteCountry(ctx context.Context, id int64) error
	IsDupeCountry(ctx context.Context, c model.Country) (bool, error)
	IsDupeField(ctx context.Context, fieldName, fieldValue string, countryID int64) (bool, error)
}
