package logger

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes GORM's SQL logging through zerolog.
type GormLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func NewGormLogger(level gormlogger.LogLevel, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{level: level, slowThreshold: slowThreshold}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		WithContext(ctx).Info().Str("component", "gorm").Msgf(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		WithContext(ctx).Warn().Str("component", "gorm").Msgf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		WithContext(ctx).Error().Str("component", "gorm").Msgf(msg, data...)
	}
}

// Trace logs one executed statement. Record-not-found is a normal lookup miss and is skipped.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	event := func(e *zerolog.Event) *zerolog.Event {
		sql, rows := fc()
		return e.Str("component", "gorm").
			Dur("elapsed", elapsed).
			Int64("rows", rows).
			Str("sql", sql)
	}
	zl := WithContext(ctx)

	switch {
	case err != nil && l.level >= gormlogger.Error:
		if errors.Is(err, gormlogger.ErrRecordNotFound) {
			return
		}
		event(zl.Error()).Err(err).Msg("SQL error")
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		event(zl.Warn()).Dur("threshold", l.slowThreshold).Msg("Slow SQL")
	case l.level >= gormlogger.Info:
		event(zl.Debug()).Msg("SQL")
	}
}

// GormLevel maps the application log level to a GORM level.
func GormLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	case "silent":
		return gormlogger.Silent
	default:
		return gormlogger.Warn
	}
}
