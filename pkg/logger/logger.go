package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/rs/zerolog"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
	slogzerolog "github.com/samber/slog-zerolog/v2"
)

// Logger is the structured logger shared by every component
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	With(args ...any) Logger
	WithComponent(name string) Logger
}

// Opts configures a logger
type Opts struct {
	Env       string
	Level     string
	SentryDSN string
	Output    io.Writer
}

// Impl fans slog records out to zerolog and, when configured, to Sentry
type Impl struct {
	logger *slog.Logger
	sentry bool
}

var _ Logger = (*Impl)(nil)

// New builds a logger. Development environments get a console writer,
// everything else gets JSON lines.
func New(opts Opts) *Impl {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	var zl zerolog.Logger
	if opts.Env == "" || opts.Env == "development" {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	} else {
		zl = zerolog.New(out).With().Timestamp().Logger()
	}

	level := ParseLevel(opts.Level)
	handlers := []slog.Handler{
		slogzerolog.Option{Level: level, Logger: &zl}.NewZerologHandler(),
	}

	sentryEnabled := false
	if opts.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         opts.SentryDSN,
			Environment: opts.Env,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "sentry init failed: %v\n", err)
		} else {
			sentryEnabled = true
			handlers = append(handlers, slogsentry.Option{Level: slog.LevelError}.NewSentryHandler())
		}
	}

	return &Impl{
		logger: slog.New(slogmulti.Fanout(handlers...)),
		sentry: sentryEnabled,
	}
}

// Nop returns a logger that discards everything
func Nop() *Impl {
	return &Impl{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// ParseLevel maps a level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (l *Impl) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *Impl) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *Impl) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *Impl) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

// With returns a logger carrying the given attributes
func (l *Impl) With(args ...any) Logger {
	return &Impl{logger: l.logger.With(args...), sentry: l.sentry}
}

// WithComponent tags every record with the component name
func (l *Impl) WithComponent(name string) Logger {
	return l.With("component", name)
}

// Slog exposes the underlying slog logger for libraries that want one
func (l *Impl) Slog() *slog.Logger {
	return l.logger
}

// Flush waits for buffered Sentry events to be delivered
func (l *Impl) Flush(ctx context.Context) {
	if !l.sentry {
		return
	}
	timeout := 2 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	sentry.Flush(timeout)
}
