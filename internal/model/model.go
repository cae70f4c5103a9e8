// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes; the only behavior here is the
// list schema registration in schema.go.
package model

import "time"

// Country is a sovereign country with its ISO 3166 codes.
type Country struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	ISO2      string    `json:"iso2"`
	ISO3      string    `json:"iso3"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// City is a populated place belonging to a country.
type City struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Lat       float64   `json:"lat"`
	Lon       float64   `json:"lon"`
	CountryID int64     `json:"countryId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CityDTO is the row shape served by the city list endpoint.
// db tags match the columns of the listing relation in the postgres repository.
type CityDTO struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Lat         float64 `json:"lat" db:"lat"`
	Lon         float64 `json:"lon" db:"lon"`
	CountryID   int64   `json:"countryId" db:"country_id"`
	CountryName string  `json:"countryName" db:"country_name"`
}

// CountryDTO is the row shape served by the country list endpoint.
type CountryDTO struct {
	ID        int64  `json:"id" db:"id"`
	Name      string `json:"name" db:"name"`
	ISO2      string `json:"iso2" db:"iso2"`
	ISO3      string `json:"iso3" db:"iso3"`
	TotCities int64  `json:"totCities" db:"tot_cities"`
}
