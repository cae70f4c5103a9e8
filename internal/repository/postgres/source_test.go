package postgres

import (
	"testing"

	"github.com/maxviazov/worldcities-service/internal/model"
	"github.com/maxviazov/worldcities-service/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cityFilter(t *testing.T, column, prefix string) query.Filter[model.CityDTO] {
	t.Helper()
	f, err := query.BuildFilter(model.CitySchema, column, prefix)
	require.NoError(t, err)
	require.NotNil(t, f)
	return *f
}

func citySort(t *testing.T, column, order string) *query.Sort[model.CityDTO] {
	t.Helper()
	s, err := query.BuildSort(model.CitySchema, column, order)
	require.NoError(t, err)
	return s
}

func TestBuildCountSQL(t *testing.T) {
	sql, args := buildCountSQL[model.CityDTO]("city_list", nil)
	assert.Equal(t, "SELECT COUNT(*) FROM city_list", sql)
	assert.Empty(t, args)

	sql, args = buildCountSQL("city_list", []query.Filter[model.CityDTO]{
		cityFilter(t, "countryName", "Cz"),
		cityFilter(t, "lat", "50"),
	})
	assert.Equal(t, `SELECT COUNT(*) FROM city_list WHERE starts_with("country_name"::text, $1) AND starts_with("lat"::numeric::text, $2)`, sql)
	assert.Equal(t, []any{"Cz", "50"}, args)
}

func TestTextExpr(t *testing.T) {
	assert.Equal(t, `"name"::text`, textExpr("name", query.KindText))
	assert.Equal(t, `"id"::text`, textExpr("id", query.KindInt))
	assert.Equal(t, `"lon"::numeric::text`, textExpr("lon", query.KindFloat))
}

func TestBuildFetchSQL(t *testing.T) {
	cols := []string{"id", "name"}
	w := query.Window{Offset: 10, Limit: 5}

	tests := []struct {
		name     string
		filters  []query.Filter[model.CityDTO]
		sort     *query.Sort[model.CityDTO]
		wantSQL  string
		wantArgs []any
	}{
		{
			name:     "natural order",
			wantSQL:  `SELECT "id", "name" FROM city_list ORDER BY "id" ASC LIMIT $1 OFFSET $2`,
			wantArgs: []any{5, 10},
		},
		{
			name:     "sorted and filtered",
			filters:  []query.Filter[model.CityDTO]{cityFilter(t, "name", "Pra")},
			sort:     citySort(t, "NAME", "asc"),
			wantSQL:  `SELECT "id", "name" FROM city_list WHERE starts_with("name"::text, $1) ORDER BY "name" ASC, "id" ASC LIMIT $2 OFFSET $3`,
			wantArgs: []any{"Pra", 5, 10},
		},
		{
			name:     "default direction is descending",
			sort:     citySort(t, "countryName", ""),
			wantSQL:  `SELECT "id", "name" FROM city_list ORDER BY "country_name" DESC, "id" ASC LIMIT $1 OFFSET $2`,
			wantArgs: []any{5, 10},
		},
		{
			name:     "sort on key has no tiebreak",
			sort:     citySort(t, "id", "DESC"),
			wantSQL:  `SELECT "id", "name" FROM city_list ORDER BY "id" DESC LIMIT $1 OFFSET $2`,
			wantArgs: []any{5, 10},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := buildFetchSQL("city_list", cols, "id", tt.filters, tt.sort, w)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildFetchSQL_HostileValuesStayBound(t *testing.T) {
	f := cityFilter(t, "name", "x'); DROP TABLE cities; --")
	sql, args := buildFetchSQL("city_list", []string{"id"}, "id", []query.Filter[model.CityDTO]{f}, nil, query.Window{Limit: 1})
	assert.NotContains(t, sql, "DROP")
	assert.Equal(t, "x'); DROP TABLE cities; --", args[0])
}

func TestIdent_QuotesIdentifiers(t *testing.T) {
	assert.Equal(t, `"country_name"`, ident("country_name"))
	assert.Equal(t, `"we""ird"`, ident(`we"ird`))
}
