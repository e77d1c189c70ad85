package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// handlerでステータスに変換する業務エラー
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// 400
func ErrValidation(msg string) error { return NewHTTPError(http.StatusBadRequest, msg) }

// 404
func ErrNotFound(msg string) error { return NewHTTPError(http.StatusNotFound, msg) }

// 409
func ErrConflict(msg string) error { return NewHTTPError(http.StatusConflict, msg) }

// 401
var ErrUnauthorized = NewHTTPError(http.StatusUnauthorized, "Unauthorized")
