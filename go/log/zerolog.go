package log

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	logWriter "github.com/newrelic/go-agent/v3/integrations/logcontext-v2/zerologWriter"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/kodekoding/slackmate/go/env"
)

var (
	logZero zerolog.Logger
	once    sync.Once
)

type (
	Logger struct {
		newRelicApp *newrelic.Application
		appName     string
		appVersion  string
		output      io.Writer
		json        bool
	}

	LoggerOption func(*Logger)
)

func WithNewRelicApp(app *newrelic.Application) LoggerOption {
	return func(l *Logger) {
		l.newRelicApp = app
	}
}

func WithAppName(appName string) LoggerOption {
	return func(l *Logger) {
		l.appName = appName
	}
}

func WithAppVersion(appVersion string) LoggerOption {
	return func(l *Logger) {
		l.appVersion = appVersion
	}
}

// WithOutput replaces the console writer, mostly useful in tests
func WithOutput(w io.Writer) LoggerOption {
	return func(l *Logger) {
		l.output = w
	}
}

// WithJSON disables the console writer and prints raw json lines
func WithJSON() LoggerOption {
	return func(l *Logger) {
		l.json = true
	}
}

// New builds a zerolog logger without touching the global one
func New(loggerOption ...LoggerOption) zerolog.Logger {
	logger := &Logger{
		appName: os.Getenv("APP_NAME"),
		output:  os.Stdout,
		json:    env.IsProduction(),
	}
	for _, opt := range loggerOption {
		opt(logger)
	}

	logLevel := zerolog.DebugLevel
	if env.IsProduction() {
		logLevel = zerolog.InfoLevel
	}

	writer := logger.output
	if !logger.json {
		writer = zerolog.ConsoleWriter{
			Out:        logger.output,
			NoColor:    !env.IsDevelopment(),
			TimeFormat: time.RFC3339,
		}
	}

	if logger.newRelicApp != nil {
		writer = logWriter.New(logger.output, logger.newRelicApp)
	}

	logInit := zerolog.New(writer).
		Level(logLevel).
		With().
		Timestamp().
		Str("app", logger.appName).
		Str("env", env.ServiceEnv())

	if logger.appVersion != "" {
		logInit = logInit.Str("app_version", logger.appVersion)
	}

	return logInit.Logger()
}

// Get initializes the global logger once and returns it.
// Options are only honored on the first call.
func Get(loggerOption ...LoggerOption) *zerolog.Logger {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		logZero = New(loggerOption...)
		zerolog.DefaultContextLogger = &logZero
		logZero.Debug().Msg("Logger succesfully initialized")
	})

	return &logZero
}

// Set replaces the global logger
func Set(logger zerolog.Logger) {
	Get()
	logZero = logger
}

// Ctx returns the logger attached to ctx, falling back to the global one
func Ctx(ctx context.Context) *zerolog.Logger {
	Get()
	return zerolog.Ctx(ctx)
}

// WithRequestID attaches a logger carrying req_id to ctx
func WithRequestID(ctx context.Context, requestID string) context.Context {
	logger := Ctx(ctx).With().Str(requestFieldName, requestID).Logger()
	return logger.WithContext(ctx)
}

const requestFieldName = "req_id"
