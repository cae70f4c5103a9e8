package repository

import (
	"context"

	"github.com/jackc/pgx/v5/tracelog"
	"github.com/rs/zerolog"
)

// pgxLogger feeds pgx query tracing into the service logger under component=pgx.
type pgxLogger struct {
	logger zerolog.Logger
}

func newPgxLogger(logger zerolog.Logger) *pgxLogger {
	return &pgxLogger{logger: logger.With().Str("component", "pgx").Logger()}
}

func (l *pgxLogger) event(level tracelog.LogLevel) *zerolog.Event {
	switch level {
	case tracelog.LogLevelTrace:
		return l.logger.Trace()
	case tracelog.LogLevelDebug:
		return l.logger.Debug()
	case tracelog.LogLevelInfo:
		return l.logger.Info()
	case tracelog.LogLevelWarn:
		return l.logger.Warn()
	case tracelog.LogLevelError:
		return l.logger.Error()
	default:
		return l.logger.Info().Str("pgx_log_level", level.String())
	}
}

// Log implements tracelog.Logger. The statement and its arguments become
// top-level sql and args fields whatever the level, so listing queries can
// be grepped by the city_list or country_list relation they read.
func (l *pgxLogger) Log(_ context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	if level == tracelog.LogLevelNone {
		return
	}
	ev := l.event(level)
	if sql, ok := data["sql"].(string); ok {
		ev = ev.Str("sql", sql)
		delete(data, "sql")
	}
	if args, ok := data["args"]; ok {
		ev = ev.Interface("args", args)
		delete(data, "args")
	}
	if len(data) > 0 {
		ev = ev.Fields(data)
	}
	ev.Msg(msg)
}
