package factory

import (
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// SessionContextKey is where the session middleware keeps the caller's
// session on the echo context.
const SessionContextKey = "session"

type logSubject interface {
	LogFields() logrus.Fields
}

func NewModuleLogger(module string) logrus.FieldLogger {
	return logrus.WithField("module", module)
}

// LoggerWithContext adds the request id and, when a session is loaded, the
// caller's kind and id.
func LoggerWithContext(logger logrus.FieldLogger, ctx echo.Context) logrus.FieldLogger {
	requestID := ctx.Request().Header.Get(echo.HeaderXRequestID)
	if requestID == "" {
		requestID = ctx.Response().Header().Get(echo.HeaderXRequestID)
	}
	logger = logger.WithField("request_id", requestID)

	if subject, ok := ctx.Get(SessionContextKey).(logSubject); ok {
		logger = logger.WithFields(subject.LogFields())
	}
	return logger
}
