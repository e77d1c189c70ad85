package handler

import (
	"cartservice/internal/middleware"

	"github.com/labstack/echo/v4"
)

// Authenticateミドルウェアが入れたuser_idを取り出す
func getUserIDFromContext(c echo.Context) (string, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return "", false
	}

	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}

	return id, true
}
