package service

import (
	"errors"
	"strings"

	"github.com/maxviazov/worldcities-service/internal/model"
	"github.com/maxviazov/worldcities-service/internal/query"
)

const maxNameLen = 100

func validateID(field string, id int64) []FieldError {
	if id <= 0 {
		return []FieldError{{Field: field, Message: "must be > 0"}}
	}
	return nil
}

func validateName(name string) []FieldError {
	if name == "" {
		return []FieldError{{Field: "name", Message: "must not be empty"}}
	}
	if len([]rune(name)) > maxNameLen {
		return []FieldError{{Field: "name", Message: "length must be at most 100"}}
	}
	return nil
}

// normalizeCity trims the name in place and returns its field errors.
func normalizeCity(c *model.City) []FieldError {
	c.Name = strings.TrimSpace(c.Name)
	ferrs := validateName(c.Name)
	if c.Lat < -90 || c.Lat > 90 {
		ferrs = append(ferrs, FieldError{Field: "lat", Message: "must be between -90 and 90"})
	}
	if c.Lon < -180 || c.Lon > 180 {
		ferrs = append(ferrs, FieldError{Field: "lon", Message: "must be between -180 and 180"})
	}
	ferrs = append(ferrs, validateID("countryId", c.CountryID)...)
	return ferrs
}

// normalizeCountry trims and upper-cases the ISO codes in place and returns field errors.
func normalizeCountry(c *model.Country) []FieldError {
	c.Name = normalizeCountryField("name", c.Name)
	c.ISO2 = normalizeCountryField("iso2", c.ISO2)
	c.ISO3 = normalizeCountryField("iso3", c.ISO3)
	ferrs := validateName(c.Name)
	if !isISOCode(c.ISO2, 2) {
		ferrs = append(ferrs, FieldError{Field: "iso2", Message: "must be 2 latin letters"})
	}
	if !isISOCode(c.ISO3, 3) {
		ferrs = append(ferrs, FieldError{Field: "iso3", Message: "must be 3 latin letters"})
	}
	return ferrs
}

// normalizeCountryField renders a unique country field the way it is stored.
func normalizeCountryField(field, value string) string {
	value = strings.TrimSpace(value)
	if field == "iso2" || field == "iso3" {
		return strings.ToUpper(value)
	}
	return value
}

func isISOCode(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// isClientQueryError reports list errors caused by the request itself.
func isClientQueryError(err error) bool {
	return errors.Is(err, query.ErrUnknownField) ||
		errors.Is(err, query.ErrInvalidPageSize) ||
		errors.Is(err, query.ErrInvalidPageIndex)
}
