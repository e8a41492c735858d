package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler is the last resort for errors that escaped a handler.
// The response is always JSON. Unknown errors become 500 and their text is
// only included when dev is true.
func HTTPErrorHandler(log *slog.Logger, dev bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			body := echo.Map{}
			switch he.Code {
			case http.StatusNotFound:
				body["error"] = "Route not found"
			case http.StatusInternalServerError:
				body["error"] = "Something went wrong!"
				if dev && he.Internal != nil {
					body["message"] = he.Internal.Error()
				}
			default:
				body["error"] = http.StatusText(he.Code)
				if m, ok := he.Message.(string); ok && m != "" {
					body["error"] = m
				}
			}
			if he.Code >= 500 {
				log.Error("request failed", slog.String("path", c.Request().URL.Path), slog.Any("err", err))
			}
			writeError(log, c, he.Code, body)
			return
		}

		log.Error("unhandled error",
			slog.String("method", c.Request().Method),
			slog.String("path", c.Request().URL.Path),
			slog.Any("err", err))
		body := echo.Map{"error": "Something went wrong!"}
		if dev {
			body["message"] = err.Error()
		}
		writeError(log, c, http.StatusInternalServerError, body)
	}
}

func writeError(log *slog.Logger, c echo.Context, code int, body echo.Map) {
	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, body)
	}
	if err != nil {
		log.Error("write error response", slog.Int("status", code), slog.Any("err", err))
	}
}
