package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPgxLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf).Level(zerolog.TraceLevel))

	l.Log(context.Background(), tracelog.LogLevelInfo, "Query", map[string]any{
		"sql":  "SELECT COUNT(*) FROM city_list",
		"args": []any{"Pra"},
		"time": "1ms",
	})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "pgx", line["component"])
	assert.Equal(t, "SELECT COUNT(*) FROM city_list", line["sql"])
	assert.Equal(t, []any{"Pra"}, line["args"])
	assert.Equal(t, "1ms", line["time"])
	assert.Equal(t, "Query", line["message"])
}

func TestPgxLogger_LevelNoneIsSilent(t *testing.T) {
	var buf bytes.Buffer
	l := newPgxLogger(zerolog.New(&buf))
	l.Log(context.Background(), tracelog.LogLevelNone, "ignored", nil)
	assert.Zero(t, buf.Len())
}
