package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vintechs/portal/internal/logging"
)

// Logger injects a request-scoped logger into the context and logs each
// completed request. It must run after the RequestID middleware. Only the
// path is logged, never the query string.
func Logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		reqID := c.Response().Header().Get(echo.HeaderXRequestID)
		requestLogger := slog.Default().With("request_id", reqID)

		newCtx := logging.WithRequestID(logging.WithLogger(c.Request().Context(), requestLogger), reqID)
		c.SetRequest(c.Request().WithContext(newCtx))

		err := next(c)
		if err != nil {
			// Let echo's error handler pick the status before it is logged.
			c.Error(err)
		}

		requestLogger.LogAttrs(newCtx, levelFor(c.Response().Status), "request",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.Int("status", c.Response().Status),
			slog.Duration("latency", time.Since(start)),
			slog.String("remote_ip", c.RealIP()),
		)
		return nil
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
