package api

import (
	"errors"
	"exercise-tracker-service/internal/service"
	"fmt"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"net/http"
	"os"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

func invalidPayload(err error) error {
	return echo.NewHTTPError(400, "invalid request payload").SetInternal(err)
}

// HTTPErrorHandler renders every failure as {"error": "..."}.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, msg := errorResponse(err)
	if code >= 500 {
		logger.Error().Err(err).Msgf("%s %s failed", c.Request().Method, c.Request().URL.Path)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, map[string]string{"error": msg})
	}
	if err != nil {
		logger.Error().Err(err).Msg("Error writing error response")
	}
}

func errorResponse(err error) (int, string) {
	var validationErr *service.ValidationError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &validationErr):
		return 400, validationErr.Message
	case errors.Is(err, service.ErrUserNotFound):
		return 404, service.ErrUserNotFound.Error()
	case errors.As(err, &httpErr):
		if httpErr.Code == 404 || httpErr.Code == 405 {
			return 404, "not found"
		}
		return httpErr.Code, fmt.Sprint(httpErr.Message)
	}

	if msg := err.Error(); msg != "" {
		return 500, msg
	}
	return 500, "Internal Server Error"
}
