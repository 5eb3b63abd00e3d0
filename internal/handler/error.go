package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// errorResp is the uniform body of every error response. Clients only
// ever see a status code and a generic message; the underlying cause
// stays in the server log.
type errorResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

const genericErrorMessage = "An unexpected error has occurred."

// HTTPErrorHandler is the single funnel for per-request failures. Guard
// denials and handler errors arrive here as *echo.HTTPError and keep
// their status and message; everything else becomes a 500 with a
// generic message. The full error is logged server-side only.
// Startup failures never reach this handler: they abort the process in
// main before the server accepts requests.
func HTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := genericErrorMessage
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			if s, ok := he.Message.(string); ok {
				message = s
			}
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Any("error", err))
		} else {
			logger.Info("request denied",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status))
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, errorResp{Success: false, Message: message})
		}
		if werr != nil {
			logger.Error("write error response failed", slog.Any("error", werr))
		}
	}
}
