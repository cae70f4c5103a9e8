package model

import "github.com/maxviazov/worldcities-service/internal/query"

// CitySchema declares the fields of CityDTO that list requests may sort or filter by.
// Columns refer to the city listing relation, not to the cities table.
var CitySchema = query.NewSchema[CityDTO]("city",
	query.IntField("id", "id", func(c CityDTO) int64 { return c.ID }),
	query.StringField("name", "name", func(c CityDTO) string { return c.Name }),
	query.FloatField("lat", "lat", func(c CityDTO) float64 { return c.Lat }),
	query.FloatField("lon", "lon", func(c CityDTO) float64 { return c.Lon }),
	query.IntField("countryId", "country_id", func(c CityDTO) int64 { return c.CountryID }),
	query.StringField("countryName", "country_name", func(c CityDTO) string { return c.CountryName }),
)

// CountrySchema declares the list fields of CountryDTO.
var CountrySchema = query.NewSchema[CountryDTO]("country",
	query.IntField("id", "id", func(c CountryDTO) int64 { return c.ID }),
	query.StringField("name", "name", func(c CountryDTO) string { return c.Name }),
	query.StringField("iso2", "iso2", func(c CountryDTO) string { return c.ISO2 }),
	query.StringField("iso3", "iso3", func(c CountryDTO) string { return c.ISO3 }),
	query.IntField("totCities", "tot_cities", func(c CountryDTO) int64 { return c.TotCities }),
)

// CountryUniqueFields are the country attributes checked by duplicate lookups,
// keyed by lower-cased field name.
var CountryUniqueFields = map[string]string{
	"name": "name",
	"iso2": "iso2",
	"iso3": "iso3",
}
