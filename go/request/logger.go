package request

import (
	"github.com/rs/zerolog"

	plog "github.com/kodekoding/slackmate/go/log"
)

// restyLogger routes resty's own diagnostics to the global zerolog logger
type restyLogger struct {
	logger *zerolog.Logger
}

func newRestyLogger() restyLogger {
	return restyLogger{logger: plog.Get()}
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error().Str("source", "resty").Msgf(format, v...)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn().Str("source", "resty").Msgf(format, v...)
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug().Str("source", "resty").Msgf(format, v...)
}
