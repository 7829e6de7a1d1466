package logger

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// LogrusLogger routes gorm output through logrus.
type LogrusLogger struct {
	logger *logrus.Logger
	level  logger.LogLevel
}

func NewLogrusLogger() *LogrusLogger {
	return &LogrusLogger{
		logger: logrus.StandardLogger(),
		level:  logger.Warn,
	}
}

func (l *LogrusLogger) LogMode(level logger.LogLevel) logger.Interface {
	newLogger := *l
	newLogger.level = level
	return &newLogger
}

func (l *LogrusLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Info {
		l.logger.WithContext(ctx).Infof(msg, data...)
	}
}

func (l *LogrusLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Warn {
		l.logger.WithContext(ctx).Warnf(msg, data...)
	}
}

func (l *LogrusLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= logger.Error {
		l.logger.WithContext(ctx).Errorf(msg, data...)
	}
}

func (l *LogrusLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	entry := l.logger.WithContext(ctx).WithFields(logrus.Fields{
		"elapsed": elapsed,
		"rows":    rows,
		"sql":     sql,
	})

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		entry.Error(err)
	case elapsed > slowQueryThreshold:
		entry.Warn("SLOW SQL >= 200ms")
	default:
		entry.Debug("SQL")
	}
}
