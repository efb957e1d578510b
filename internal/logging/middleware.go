package logging

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
)

// RequestLogger annotates the request context with a scoped logger and writes
// one completion line per request.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := base.With(
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"remote_ip", c.RealIP(),
			)
			if rid := c.Request().Header.Get(echo.HeaderXRequestID); rid != "" {
				l = l.With("request_id", rid)
			}

			req := c.Request().WithContext(IntoContext(c.Request().Context(), l))
			c.SetRequest(req)

			start := time.Now()
			err := next(c)
			dur := time.Since(start)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}

			switch {
			case status >= 500:
				l.Error("request completed", "status", status, "duration_ms", dur.Milliseconds(), "error", err)
			case status >= 400:
				l.Warn("request completed", "status", status, "duration_ms", dur.Milliseconds())
			default:
				l.Info("request completed", "status", status, "duration_ms", dur.Milliseconds())
			}
			return err
		}
	}
}
