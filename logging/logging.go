package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process wide logger, replaced by Setup.
var Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Setup configures level and output format ("json" or "console").
func Setup(level, format string) {
	SetOutput(os.Stdout, format)
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	Logger = Logger.Level(lvl)
}

// SetOutput redirects the logger to w, keeping the current level.
func SetOutput(w io.Writer, format string) {
	lvl := Logger.GetLevel()
	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	Logger = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

func Debug() *zerolog.Event {
	return Logger.Debug()
}
func Info() *zerolog.Event {
	return Logger.Info()
}
func Warn() *zerolog.Event {
	return Logger.Warn()
}
func Error() *zerolog.Event {
	return Logger.Error()
}
func Fatal() *zerolog.Event {
	return Logger.Fatal()
}

// GormWriter adapts the logger to gorm's LogWriter.
type GormWriter struct{}

func (GormWriter) Println(v ...interface{}) {
	Logger.Debug().Interface("gorm", v).Send()
}
