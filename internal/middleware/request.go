package middleware

import (
	"time"

	"menuReco/business/menu"
	"menuReco/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const HeaderRequestID = "X-Request-ID"

// TraceID reuses the caller's X-Request-ID or generates one, echoes it in
// the response and stores it in the request context for service logs.
func TraceID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(HeaderRequestID)
			if id == "" {
				id = uuid.NewString()
			}

			c.Response().Header().Set(HeaderRequestID, id)
			ctx := menu.WithTraceID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

// RequestLogger logs one line per request, at a level picked from the
// status code.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			kv := []any{
				"trace_id", menu.TraceIDFromContext(c.Request().Context()),
				"status", status,
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"ip", c.RealIP(),
				"latency", time.Since(start).String(),
			}

			switch {
			case status >= 500:
				logger.Error("server error", kv...)
			case status >= 400:
				logger.Warn("client error", kv...)
			default:
				logger.Debug("request completed", kv...)
			}

			return nil
		}
	}
}
