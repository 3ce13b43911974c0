package logger

import (
	"io"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"

	"github.com/emilianohg/launchtracker/internal/config"
)

// New returns a logger writing to a rotated file in the app directory.
func New(cfg *config.Config) (*logrus.Logger, error) {
	path, err := config.LogPath()
	if err != nil {
		return nil, err
	}
	if err := config.EnsureDirectories(); err != nil {
		return nil, err
	}

	return NewWithWriter(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     30,
	}, cfg.LogLevel), nil
}

func NewWithWriter(w io.Writer, level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// Discard is the default logger for stores built without one.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
