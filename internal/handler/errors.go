package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"cartservice/internal/repository"
	"cartservice/internal/usecase"
	"cartservice/internal/validator"

	"github.com/labstack/echo/v4"
)

// エラーレスポンス（全エンドポイント共通）
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Error      string `json:"error,omitempty"` // 5xxのみ
	Path       string `json:"path"`
	Timestamp  string `json:"timestamp"`
}

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// echoのHTTPErrorHandler。ステータスへの変換はここだけで行う
func ErrorHandler(logger *slog.Logger, now func() time.Time) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg := classify(err)
		body := ErrorResponse{
			StatusCode: status,
			Message:    msg,
			Path:       c.Request().URL.RequestURI(),
			Timestamp:  now().UTC().Format(timestampLayout),
		}

		if status >= http.StatusInternalServerError {
			body.Error = err.Error()
			logger.ErrorContext(c.Request().Context(), "request failed",
				slog.String("method", c.Request().Method),
				slog.String("path", body.Path),
				slog.String("error", err.Error()),
			)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", slog.String("error", werr.Error()))
		}
	}
}

func classify(err error) (int, string) {
	if he, ok := usecase.AsHTTPError(err); ok {
		return he.Status, he.Message
	}

	if msg, ok := validator.Message(err); ok {
		return http.StatusBadRequest, msg
	}

	//uuid列に変な値が来た
	if errors.Is(err, repository.ErrInvalidInput) {
		return http.StatusBadRequest, "Invalid input syntax"
	}

	//bind失敗 / 404ルート / 405
	var ee *echo.HTTPError
	if errors.As(err, &ee) {
		if ee.Code >= http.StatusInternalServerError {
			return ee.Code, "Internal server error"
		}
		return ee.Code, fmt.Sprint(ee.Message)
	}

	//500
	return http.StatusInternalServerError, "Internal server error"
}
