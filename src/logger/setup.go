package logger

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/uptrace/opentelemetry-go-extra/otellogrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/jiaming2012/broker-session/src/session-api/models"
)

// Setup configures the standard logrus logger. When cfg.File is set, output is also written to
// a rotated log file. With telemetry enabled, warnings and errors are attached to the active
// span.
func Setup(cfg models.LogConfigYAML, telemetryEnabled bool) error {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("logger.Setup: %w", err)
	}

	log.SetLevel(level)

	switch cfg.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		})
	}

	log.SetOutput(out)

	if telemetryEnabled {
		log.AddHook(otellogrus.NewHook(otellogrus.WithLevels(
			log.PanicLevel,
			log.FatalLevel,
			log.ErrorLevel,
			log.WarnLevel,
		)))
	}

	return nil
}
