// Package contract holds behavioral test suites every repository implementation
// must pass. Implementations wire them up through factories from their own tests.
package contract

import (
	"context"
	"errors"
	"testing"

	"github.com/maxviazov/worldcities-service/internal/model"
	"github.com/maxviazov/worldcities-service/internal/query"
	"github.com/maxviazov/worldcities-service/internal/repository"
)

// Fixture is a fresh, empty store as seen through the repository contracts.
type Fixture struct {
	Cities    repository.CityRepository
	Countries repository.CountryRepository
	Tx        repository.TxManager
}

type Factory func(t *testing.T) (Fixture, func())

type PingerFactory func(t *testing.T) (repository.Pinger, func())

func seedCountry(t *testing.T, f Fixture, name, iso2, iso3 string) model.Country {
	t.Helper()
	c, err := f.Countries.Create(context.Background(), model.Country{Name: name, ISO2: iso2, ISO3: iso3})
	if err != nil {
		t.Fatalf("seed country %s: %v", name, err)
	}
	return c
}

func seedCity(t *testing.T, f Fixture, name string, lat, lon float64, countryID int64) model.City {
	t.Helper()
	c, err := f.Cities.Create(context.Background(), model.City{Name: name, Lat: lat, Lon: lon, CountryID: countryID})
	if err != nil {
		t.Fatalf("seed city %s: %v", name, err)
	}
	return c
}

func RunCityRepositoryContract(t *testing.T, makeFixture Factory) {
	t.Helper()

	t.Run("create_and_get", func(t *testing.T) {
		f, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		cz := seedCountry(t, f, "Czechia", "CZ", "CZE")
		created, err := f.Cities.Create(ctx, model.City{Name: "Prague", Lat: 50.0875, Lon: 14.4214, CountryID: cz.ID})
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if created.ID == 0 {
			t.Fatalf("expected generated id")
		}
		got, err := f.Cities.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if got.Name != "Prague" || got.CountryID != cz.ID || got.Lat != 50.0875 {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		f, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		_, err := f.Cities.GetByID(context.Background(), 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("create_unknown_country_conflict", func(t *testing.T) {
		f, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		_, err := f.Cities.Create(context.Background(), model.City{Name: "Nowhere", CountryID: 424242})
		if !errors.Is(err, repository.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("update_and_delete", func(t *testing.T) {
		f, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		de := seedCountry(t, f, "Germany", "DE", "DEU")
		c := seedCity(t, f, "Berln", 52.52, 13.405, de.ID)

		c.Name = "Berlin"
		updated, err := f.Cities.Update(ctx, c)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Name != "Berlin" || updated.ID != c.ID {
			t.Fatalf("unexpected update result: %+v", updated)
		}

		if err := f.Cities.Delete(ctx, c.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := f.Cities.GetByID(ctx, c.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
		if err := f.Cities.Delete(ctx, c.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
		if _, err := f.Cities.Update(ctx, c); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound on update of deleted row, got %v", err)
		}
	})

	t.Run("is_dupe_ignores_self", func(t *testing.T) {
		f, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		it := seedCountry(t, f, "Italy", "IT", "ITA")
		rome := seedCity(t, f, "Rome", 41.9, 12.5, it.ID)

		dupe, err := f.Cities.IsDupe(ctx, rome)
		if err != nil || dupe {
			t.Fatalf("a city is not its own duplicate: dupe=%v err=%v", dupe, err)
		}
		candidate := rome
		candidate.ID = 0
		dupe, err = f.Cities.IsDupe(ctx, candidate)
		if err != nil || !dupe {
			t.Fatalf("expected duplicate: dupe=%v err=%v", dupe, err)
		}
		candidate.Lat = 41.8
		dupe, err = f.Cities.IsDupe(ctx, candidate)
		if err != nil || dupe {
			t.Fatalf("different coordinates are not a duplicate: dupe=%v err=%v", dupe, err)
		}
	})

	t.Run("list_filter_sort_page", func(t *testing.T) {
		f, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		cz := seedCountry(t, f, "Czechia", "CZ", "CZE")
		ch := seedCountry(t, f, "Switzerland", "CH", "CHE")
		seedCity(t, f, "Prague", 50.08, 14.42, cz.ID)
		seedCity(t, f, "Brno", 49.19, 16.61, cz.ID)
		seedCity(t, f, "Bern", 46.95, 7.45, ch.ID)
		seedCity(t, f, "Basel", 47.56, 7.59, ch.ID)
		seedCity(t, f, "Plzen", 49.74, 13.37, cz.ID)

		res, err := query.Create(ctx, f.Cities.Source(), model.CitySchema, query.Params{
			PageIndex: 0, PageSize: 2,
			SortColumn: "name", SortOrder: "asc",
			FilterColumn: "name", FilterQuery: "B",
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if res.TotalCount() != 3 || res.TotalPages() != 2 || !res.HasNextPage() {
			t.Fatalf("unexpected page meta: total=%d pages=%d", res.TotalCount(), res.TotalPages())
		}
		data := res.Data()
		if len(data) != 2 || data[0].Name != "Basel" || data[1].Name != "Bern" {
			t.Fatalf("unexpected page: %+v", data)
		}
		if data[0].CountryName != "Switzerland" {
			t.Fatalf("expected joined country name, got %q", data[0].CountryName)
		}

		res, err = query.Create(ctx, f.Cities.Source(), model.CitySchema, query.Params{
			PageIndex: 1, PageSize: 2,
			SortColumn: "name", SortOrder: "asc",
			FilterColumn: "name", FilterQuery: "B",
		})
		if err != nil {
			t.Fatalf("list page 2: %v", err)
		}
		if data := res.Data(); len(data) != 1 || data[0].Name != "Brno" || res.HasNextPage() || !res.HasPreviousPage() {
			t.Fatalf("unexpected last page: %+v", data)
		}
	})

	t.Run("list_natural_order_and_related_filter", func(t *testing.T) {
		f, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		cz := seedCountry(t, f, "Czechia", "CZ", "CZE")
		ch := seedCountry(t, f, "Switzerland", "CH", "CHE")
		first := seedCity(t, f, "Zurich", 47.37, 8.54, ch.ID)
		second := seedCity(t, f, "Ostrava", 49.82, 18.26, cz.ID)

		res, err := query.Create(ctx, f.Cities.Source(), model.CitySchema, query.Params{PageSize: 10})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		data := res.Data()
		if len(data) != 2 || data[0].ID != first.ID || data[1].ID != second.ID {
			t.Fatalf("expected id order, got %+v", data)
		}

		res, err = query.Create(ctx, f.Cities.Source(), model.CitySchema, query.Params{
			PageSize: 10, FilterColumn: "countryName", FilterQuery: "Cz",
		})
		if err != nil {
			t.Fatalf("list by country: %v", err)
		}
		if data := res.Data(); len(data) != 1 || data[0].Name != "Ostrava" {
			t.Fatalf("unexpected filtered rows: %+v", data)
		}
	})

	t.Run("list_float_filter_uses_plain_decimals", func(t *testing.T) {
		f, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		gh := seedCountry(t, f, "Ghana", "GH", "GHA")
		seedCity(t, f, "Null Island", 0.00001, -0.2, gh.ID)
		seedCity(t, f, "Accra", 5.6, -0.19, gh.ID)

		res, err := query.Create(ctx, f.Cities.Source(), model.CitySchema, query.Params{
			PageSize: 10, FilterColumn: "lat", FilterQuery: "0.0000",
		})
		if err != nil {
			t.Fatalf("list by lat: %v", err)
		}
		if data := res.Data(); len(data) != 1 || data[0].Name != "Null Island" {
			t.Fatalf("unexpected filtered rows: %+v", data)
		}
	})
}

func RunCountryRepositoryContract(t *testing.T, makeFixture Factory) {
	t.Helper()

	t.Run("create_get_exists", func(t *testing.T) {
		f, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		created := seedCountry(t, f, "France", "FR", "FRA")
		got, err := f.Countries.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.Name != "France" || got.ISO2 != "FR" || got.ISO3 != "FRA" {
			t.Fatalf("mismatch: %+v", got)
		}
		ok, err := f.Countries.Exists(ctx, created.ID)
		if err != nil || !ok {
			t.Fatalf("expected exists: ok=%v err=%v", ok, err)
		}
		ok, err = f.Countries.Exists(ctx, created.ID+1000)
		if err != nil || ok {
			t.Fatalf("expected missing: ok=%v err=%v", ok, err)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		f, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		_, err := f.Countries.GetByID(context.Background(), 999999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("create_duplicate_iso_already_exists", func(t *testing.T) {
		f, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		seedCountry(t, f, "Spain", "ES", "ESP")
		_, err := f.Countries.Create(context.Background(), model.Country{Name: "Espana", ISO2: "ES", ISO3: "ESX"})
		if !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("update_to_taken_name_already_exists", func(t *testing.T) {
		f, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		seedCountry(t, f, "Austria", "AT", "AUT")
		au := seedCountry(t, f, "Australia", "AU", "AUS")
		au.Name = "Austria"
		if _, err := f.Countries.Update(context.Background(), au); !errors.Is(err, repository.ErrAlreadyExists) {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("is_dupe_and_is_dupe_field", func(t *testing.T) {
		f, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		pt := seedCountry(t, f, "Portugal", "PT", "PRT")

		dupe, err := f.Countries.IsDupe(ctx, model.Country{Name: "Portugal", ISO2: "PT", ISO3: "PRT"})
		if err != nil || !dupe {
			t.Fatalf("expected duplicate: dupe=%v err=%v", dupe, err)
		}
		dupe, err = f.Countries.IsDupe(ctx, pt)
		if err != nil || dupe {
			t.Fatalf("a country is not its own duplicate: dupe=%v err=%v", dupe, err)
		}

		dupe, err = f.Countries.IsDupeField(ctx, "iso3", "PRT", 0)
		if err != nil || !dupe {
			t.Fatalf("expected iso3 taken: dupe=%v err=%v", dupe, err)
		}
		dupe, err = f.Countries.IsDupeField(ctx, "iso3", "PRT", pt.ID)
		if err != nil || dupe {
			t.Fatalf("own value must not count: dupe=%v err=%v", dupe, err)
		}
		dupe, err = f.Countries.IsDupeField(ctx, "name", "Poland", 0)
		if err != nil || dupe {
			t.Fatalf("expected free name: dupe=%v err=%v", dupe, err)
		}
	})

	t.Run("delete_cascades_cities", func(t *testing.T) {
		f, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		nl := seedCountry(t, f, "Netherlands", "NL", "NLD")
		ams := seedCity(t, f, "Amsterdam", 52.37, 4.9, nl.ID)

		if err := f.Countries.Delete(ctx, nl.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := f.Cities.GetByID(ctx, ams.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected city removed with its country, got %v", err)
		}
		if err := f.Countries.Delete(ctx, nl.ID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list_counts_cities", func(t *testing.T) {
		f, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		pl := seedCountry(t, f, "Poland", "PL", "POL")
		pe := seedCountry(t, f, "Peru", "PE", "PER")
		seedCountry(t, f, "Chile", "CL", "CHL")
		seedCity(t, f, "Warsaw", 52.23, 21.01, pl.ID)
		seedCity(t, f, "Krakow", 50.06, 19.94, pl.ID)
		seedCity(t, f, "Lima", -12.05, -77.04, pe.ID)

		res, err := query.Create(ctx, f.Countries.Source(), model.CountrySchema, query.Params{
			PageSize: 10, SortColumn: "totCities", FilterColumn: "iso2", FilterQuery: "P",
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		data := res.Data()
		if res.TotalCount() != 2 || len(data) != 2 {
			t.Fatalf("unexpected rows: %+v", data)
		}
		// no sortOrder means descending
		if data[0].Name != "Poland" || data[0].TotCities != 2 || data[1].TotCities != 1 {
			t.Fatalf("unexpected order: %+v", data)
		}
	})
}

func RunTxManagerContract(t *testing.T, makeFixture Factory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		f, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		err := f.Tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := f.Countries.Create(ctx, model.Country{Name: "Norway", ISO2: "NO", ISO3: "NOR"})
			if err != nil {
				return err
			}
			createdID = out.ID
			return nil
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := f.Countries.GetByID(ctx, createdID); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		f, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		errMarker := errors.New("boom")
		err := f.Tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := f.Countries.Create(ctx, model.Country{Name: "Sweden", ISO2: "SE", ISO3: "SWE"})
			if err != nil {
				return err
			}
			createdID = out.ID
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := f.Countries.GetByID(ctx, createdID); !errors.Is(err, repository.ErrNotFound) {
			t.Fatalf("expected ErrNotFound after rollback, got %v", err)
		}
	})

	t.Run("rollback_keeps_writes_outside_tx", func(t *testing.T) {
		f, cleanup := makeFixture(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var outsideID int64
		err := f.Tx.WithinTx(ctx, func(txCtx context.Context) error {
			if _, err := f.Countries.Create(txCtx, model.Country{Name: "Finland", ISO2: "FI", ISO3: "FIN"}); err != nil {
				return err
			}
			out, err := f.Countries.Create(ctx, model.Country{Name: "Estonia", ISO2: "EE", ISO3: "EST"})
			if err != nil {
				return err
			}
			outsideID = out.ID
			return errors.New("boom")
		})
		if err == nil {
			t.Fatal("expected error from WithinTx")
		}
		if _, err := f.Countries.GetByID(ctx, outsideID); err != nil {
			t.Fatalf("expected write outside the tx to survive rollback, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
