package repository

import (
	"context"

	"github.com/maxviazov/worldcities-service/internal/model"
	"github.com/maxviazov/worldcities-service/internal/query"
)

// Pinger represents a minimal readiness probe capability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// CityRepository declares persistence operations for cities.
// Listing goes through Source so the query package owns sorting, filtering and paging.
type CityRepository interface {
	Source() query.Source[model.CityDTO]
	GetByID(ctx context.Context, id int64) (model.City, error)
	Create(ctx context.Context, c model.City) (model.City, error)
	Update(ctx context.Context, c model.City) (model.City, error)
	Delete(ctx context.Context, id int64) error
	// IsDupe reports whether another city (different ID) has the same name, coordinates and country.
	IsDupe(ctx context.Context, c model.City) (bool, error)
}

// CountryRepository declares persistence operations for countries.
type CountryRepository interface {
	Source() query.Source[model.CountryDTO]
	GetByID(ctx context.Context, id int64) (model.Country, error)
	Create(ctx context.Context, c model.Country) (model.Country, error)
	Update(ctx context.Context, c model.Country) (model.Country, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	// IsDupe reports whether another country shares the name, ISO2 and ISO3 codes.
	IsDupe(ctx context.Context, c model.Country) (bool, error)
	// IsDupeField reports whether a country other than excludeID has value in field.
	// field must be a key of model.CountryUniqueFields; callers validate it.
	IsDupeField(ctx context.Context, field, value string, excludeID int64) (bool, error)
}
