package logger

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// minLevel is the level applied to loggers created after SetLevel. Stored
// atomically because HTTP handlers create loggers while the config may still
// be applied at startup.
var minLevel atomic.Int32

func init() {
	minLevel.Store(int32(zerolog.InfoLevel))
}

// SetLevel sets the minimum level for loggers created afterwards. Accepts the
// zerolog level names (trace, debug, info, warn, error, fatal, panic).
func SetLevel(level string) error {
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}
	minLevel.Store(int32(l))
	return nil
}

// ZerologLogger adapts rs/zerolog to the core Logger interface. Output format
// follows APP_ENV: human-readable console in dev, JSON everywhere else. Every
// line carries the component field so advice, store and publisher logs can be
// told apart.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a component logger honoring the configured level.
func NewZerologLogger(component string) Logger {
	env := strings.ToLower(os.Getenv("APP_ENV"))
	var z zerolog.Logger
	if env == "dev" {
		writer := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		z = zerolog.New(writer).With().Timestamp().Str("component", component).Logger()
	} else {
		z = zerolog.New(os.Stdout).With().Timestamp().Str("component", component).Logger()
	}
	z = z.Level(zerolog.Level(minLevel.Load()))
	return &ZerologLogger{log: z}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	ev := l.log.Debug()
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
