package middleware

import (
	"errors"
	"net/http"
	"strings"

	"menuReco/business/menu"
	"menuReco/pkg/logger"
	jsonres "menuReco/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders errors that escape handlers, including router
// 404/405 and recovered panics, in the response envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error("unhandled error",
			"trace_id", menu.TraceIDFromContext(c.Request().Context()),
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
	}

	code := strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	if code == "" {
		code = "ERROR"
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, jsonres.Error(code, message, nil))
	}
	if writeErr != nil {
		logger.Error("failed to write error response", "error", writeErr)
	}
}
