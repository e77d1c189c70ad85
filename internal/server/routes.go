package server

import (
	"cartservice/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	Cart   *handler.CartHandler
	Order  *handler.OrderHandler
	Health *handler.HealthHandler
}

// /api/auth と /health 以外は認証必須
func RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc, h Handlers) {
	h.Health.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e)
	h.Cart.RegisterRoutes(e, auth)
	h.Order.RegisterRoutes(e, auth)
}
