package service_test

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/worldcities-service/internal/model"
	"github.com/maxviazov/worldcities-service/internal/query"
	"github.com/maxviazov/worldcities-service/internal/repository"
	"github.com/maxviazov/worldcities-service/internal/repository/memory"
	"github.com/maxviazov/worldcities-service/internal/service"
)

func newCountryService() (service.CountryService, *memory.Store) {
	store := memory.New()
	return service.NewCountryService(store.Countries(), store.TxManager(), zerolog.New(io.Discard)), store
}

func TestCountryService_CreateCountry_Validation(t *testing.T) {
	svc, _ := newCountryService()
	cases := []struct {
		name      string
		country   model.Country
		wantField string
	}{
		{"empty name", model.Country{ISO2: "FR", ISO3: "FRA"}, "name"},
		{"iso2 too long", model.Country{Name: "France", ISO2: "FRA", ISO3: "FRA"}, "iso2"},
		{"iso3 with digit", model.Country{Name: "France", ISO2: "FR", ISO3: "FR1"}, "iso3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateCountry(context.Background(), tc.country)
			require.ErrorIs(t, err, service.ErrInvalidInput)
			assert.True(t, hasFieldError(err, tc.wantField), "got %+v", service.FieldErrors(err))
		})
	}
}

func TestCountryService_CreateCountry_NormalizesCodes(t *testing.T) {
	svc, _ := newCountryService()
	out, err := svc.CreateCountry(context.Background(), model.Country{Name: " France ", ISO2: "fr", ISO3: " fra"})
	require.NoError(t, err)
	assert.Equal(t, model.Country{ID: out.ID, Name: "France", ISO2: "FR", ISO3: "FRA", CreatedAt: out.CreatedAt, UpdatedAt: out.UpdatedAt}, out)

	_, err = svc.CreateCountry(context.Background(), model.Country{Name: "France", ISO2: "FX", ISO3: "FXX"})
	assert.ErrorIs(t, err, repository.ErrAlreadyExists)
}

func TestCountryService_UpdateCountry(t *testing.T) {
	svc, _ := newCountryService()
	ctx := context.Background()
	at, err := svc.CreateCountry(ctx, model.Country{Name: "Austria", ISO2: "AT", ISO3: "AUT"})
	require.NoError(t, err)
	au, err := svc.CreateCountry(ctx, model.Country{Name: "Australia", ISO2: "AU", ISO3: "AUS"})
	require.NoError(t, err)

	t.Run("keeps own values", func(t *testing.T) {
		at.Name = "Republic of Austria"
		out, err := svc.UpdateCountry(ctx, at)
		require.NoError(t, err)
		assert.Equal(t, "Republic of Austria", out.Name)
	})

	t.Run("clashing iso3", func(t *testing.T) {
		clash := au
		clash.ISO3 = "AUT"
		_, err := svc.UpdateCountry(ctx, clash)
		require.ErrorIs(t, err, repository.ErrAlreadyExists)
		got, err := svc.GetCountry(ctx, au.ID)
		require.NoError(t, err)
		assert.Equal(t, "AUS", got.ISO3)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := svc.UpdateCountry(ctx, model.Country{ID: 999, Name: "Nowhere", ISO2: "NW", ISO3: "NWH"})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestCountryService_IsDupeField(t *testing.T) {
	svc, _ := newCountryService()
	ctx := context.Background()
	it, err := svc.CreateCountry(ctx, model.Country{Name: "Italy", ISO2: "IT", ISO3: "ITA"})
	require.NoError(t, err)

	cases := []struct {
		name      string
		field     string
		value     string
		countryID int64
		want      bool
	}{
		{"name taken", "name", "Italy", 0, true},
		{"field name is case-insensitive", "ISO2", "IT", 0, true},
		{"own value", "iso3", "ITA", it.ID, false},
		{"free value", "iso3", "ITX", 0, false},
		{"name is case-sensitive", "name", "italy", 0, false},
		{"iso2 compared as stored", "iso2", " it ", 0, true},
		{"iso3 compared as stored", "iso3", "ita", 0, true},
		{"name trimmed", "name", "  Italy ", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.IsDupeField(ctx, tc.field, tc.value, tc.countryID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err = svc.IsDupeField(ctx, "capital", "Rome", 0)
	require.ErrorIs(t, err, service.ErrInvalidInput)
	assert.True(t, hasFieldError(err, "fieldName"))
}

func TestCountryService_DupeChecksMatchStoredForm(t *testing.T) {
	svc, _ := newCountryService()
	ctx := context.Background()
	fr, err := svc.CreateCountry(ctx, model.Country{Name: "France", ISO2: "fr", ISO3: "fra"})
	require.NoError(t, err)
	de, err := svc.CreateCountry(ctx, model.Country{Name: "Germany", ISO2: "DE", ISO3: "DEU"})
	require.NoError(t, err)

	dupe, err := svc.IsDupeField(ctx, "iso2", "fr", de.ID)
	require.NoError(t, err)
	assert.True(t, dupe)

	_, err = svc.UpdateCountry(ctx, model.Country{ID: de.ID, Name: "Germany", ISO2: "fr", ISO3: "DEU"})
	require.ErrorIs(t, err, repository.ErrAlreadyExists)

	dupe, err = svc.IsDupeCountry(ctx, model.Country{Name: " France ", ISO2: "fr", ISO3: "fra"})
	require.NoError(t, err)
	assert.True(t, dupe)

	dupe, err = svc.IsDupeCountry(ctx, model.Country{ID: fr.ID, Name: "France", ISO2: "fr", ISO3: "fra"})
	require.NoError(t, err)
	assert.False(t, dupe)
}

func TestCountryService_DeleteAndList(t *testing.T) {
	svc, store := newCountryService()
	ctx := context.Background()
	pl, err := svc.CreateCountry(ctx, model.Country{Name: "Poland", ISO2: "PL", ISO3: "POL"})
	require.NoError(t, err)
	_, err = svc.CreateCountry(ctx, model.Country{Name: "Peru", ISO2: "PE", ISO3: "PER"})
	require.NoError(t, err)
	_, err = store.Cities().Create(ctx, model.City{Name: "Gdansk", CountryID: pl.ID})
	require.NoError(t, err)

	res, err := svc.ListCountries(ctx, query.Params{PageSize: 1, SortColumn: "totCities"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalPages())
	assert.Equal(t, "Poland", res.Data()[0].Name)
	assert.Equal(t, int64(1), res.Data()[0].TotCities)

	dupe, err := svc.IsDupeCountry(ctx, model.Country{Name: "Peru", ISO2: "PE", ISO3: "PER"})
	require.NoError(t, err)
	assert.True(t, dupe)

	require.NoError(t, svc.DeleteCountry(ctx, pl.ID))
	res, err = svc.ListCountries(ctx, query.DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalCount())
	assert.ErrorIs(t, svc.DeleteCountry(ctx, pl.ID), repository.ErrNotFound)
}
