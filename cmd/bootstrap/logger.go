package bootstrap

import (
	"io"
	"os"

	"go-clinic-access/config"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// setupLogger configures log for JSON output to stdout, plus a rolling file
// when one is configured. The returned func closes the file.
func setupLogger(log *logrus.Logger, cfg config.LogConfig) (func() error, error) {
	log.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.File == "" {
		log.SetOutput(os.Stdout)
		return func() error { return nil }, nil
	}

	roller := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, roller))

	return roller.Close, nil
}
