package monitoring

import (
	"context"
	"net/http"
	"os"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
)

type (
	NewRelicOpts func(relics *NewRelic)

	NewRelic struct {
		appName    string
		licenseKey string
		enabled    bool
		app        *newrelic.Application
	}

	// TraceIDContext is the context key carrying the request/trace id
	TraceIDContext struct{}
)

// InitNewRelic starts the agent; app name and license default to
// NEW_RELIC_APP_NAME (or APP_NAME) and NEW_RELIC_LICENSE_KEY
func InitNewRelic(opts ...NewRelicOpts) (*NewRelic, error) {
	var newRelicPlatform = NewRelic{
		appName:    os.Getenv("NEW_RELIC_APP_NAME"),
		licenseKey: os.Getenv("NEW_RELIC_LICENSE_KEY"),
		enabled:    true,
	}

	if newRelicPlatform.appName == "" {
		newRelicPlatform.appName = os.Getenv("APP_NAME")
	}

	for _, opt := range opts {
		opt(&newRelicPlatform)
	}

	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(newRelicPlatform.appName),
		newrelic.ConfigLicense(newRelicPlatform.licenseKey),
		newrelic.ConfigEnabled(newRelicPlatform.enabled),
		newrelic.ConfigAppLogDecoratingEnabled(true),
		newrelic.ConfigAppLogForwardingEnabled(false),
		func(config *newrelic.Config) {
			config.ErrorCollector.IgnoreStatusCodes = []int{
				http.StatusUnauthorized,
				http.StatusNotFound,
				http.StatusTooManyRequests,
			}
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "slackmate.go.monitoring.InitNewRelic")
	}
	newRelicPlatform.app = app

	return &newRelicPlatform, nil
}

func (n *NewRelic) GetApp() *newrelic.Application {
	return n.app
}

func BeginTrxFromContext(ctx context.Context) *newrelic.Transaction {
	return newrelic.FromContext(ctx)
}

func NewContext(parentCtx context.Context, txn *newrelic.Transaction) context.Context {
	return newrelic.NewContext(parentCtx, txn)
}

// WithTraceID stores traceID in ctx, read back by alerts and logs
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDContext{}, traceID)
}

// TraceID returns the trace id stored in ctx, empty when missing
func TraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDContext{}).(string)
	return traceID
}

func WithAppName(appName string) NewRelicOpts {
	return func(relics *NewRelic) {
		relics.appName = appName
	}
}

func WithLicenseKey(licenseKey string) NewRelicOpts {
	return func(relics *NewRelic) {
		relics.licenseKey = licenseKey
	}
}

// WithEnabled toggles reporting; a disabled agent never connects
func WithEnabled(enabled bool) NewRelicOpts {
	return func(relics *NewRelic) {
		relics.enabled = enabled
	}
}
