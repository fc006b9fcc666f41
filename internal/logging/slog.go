package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// InstrumentationName is the OTel scope of every log record we emit.
const InstrumentationName = "drillboard"

// Options selects the sinks Setup wires together.
type Options struct {
	// File receives text logs. When nil, logs go to stdout instead.
	File io.Writer
	// Level is one of debug, info, warn or error.
	Level string
	// Provider enables the OTel bridge when non-nil.
	Provider *sdklog.LoggerProvider
	// GraylogAddress enables GELF output when non-empty.
	GraylogAddress string
	// Context adds attributes to every record. Scenes set with WithScene
	// are added regardless.
	Context ContextProvider
}

// stdout is where console logs go when no file is configured.
var stdout io.Writer = os.Stdout

// SlogManager manages slog-based logging with optional OTel integration.
type SlogManager struct {
	logger *slog.Logger

	// OTel provider for flushing
	logProvider *sdklog.LoggerProvider
	graylog     io.Closer
}

// NewSlogManager creates a new slog-based logging manager.
func NewSlogManager() *SlogManager {
	return &SlogManager{}
}

// parseLevel converts a string log level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func handlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.UTC().Format(time.RFC3339))
				}
			}
			return a
		},
	}
}

// Setup initializes the logging system. A Graylog address that cannot be
// resolved is reported but does not stop the other sinks from working.
func (m *SlogManager) Setup(opts Options) error {
	handlerOpts := handlerOptions(parseLevel(opts.Level))
	m.logProvider = opts.Provider
	m.closeGraylog()

	var handlers []slog.Handler
	if opts.File != nil {
		handlers = append(handlers, slog.NewTextHandler(opts.File, handlerOpts))
	} else {
		handlers = append(handlers, slog.NewTextHandler(stdout, handlerOpts))
	}

	var graylogErr error
	if opts.GraylogAddress != "" {
		h, closer, err := NewGraylogHandler(opts.GraylogAddress, handlerOpts)
		if err != nil {
			graylogErr = err
		} else {
			handlers = append(handlers, h)
			m.graylog = closer
		}
	}

	if opts.Provider != nil {
		handlers = append(handlers, otelslog.NewHandler(InstrumentationName, otelslog.WithLoggerProvider(opts.Provider)))
	}

	m.logger = slog.New(NewContextHandler(NewMultiHandler(handlers...), opts.Context))
	m.logger.Info("Logging initialized", "level", opts.Level)
	if graylogErr != nil {
		m.logger.Warn("Graylog disabled", "address", opts.GraylogAddress, "error", graylogErr)
	}
	return graylogErr
}

// Logger returns the configured slog.Logger.
func (m *SlogManager) Logger() *slog.Logger {
	if m.logger == nil {
		// Return a default logger if Setup hasn't been called
		return slog.Default()
	}
	return m.logger
}

// Flush forces a flush of OTel logs if available.
func (m *SlogManager) Flush(ctx context.Context) error {
	if m.logProvider != nil {
		return m.logProvider.ForceFlush(ctx)
	}
	return nil
}

// Close flushes pending OTel records and releases the Graylog connection.
func (m *SlogManager) Close(ctx context.Context) error {
	return errors.Join(m.Flush(ctx), m.closeGraylog())
}

func (m *SlogManager) closeGraylog() error {
	if m.graylog == nil {
		return nil
	}
	err := m.graylog.Close()
	m.graylog = nil
	return err
}
