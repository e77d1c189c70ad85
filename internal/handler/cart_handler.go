package handler

import (
	"context"
	"net/http"

	"cartservice/internal/domain/model"
	"cartservice/internal/usecase"

	"github.com/labstack/echo/v4"
)

type cartService interface {
	FindOrCreateOpenCart(ctx context.Context, userID string) (usecase.CartView, error)
	SetItemQuantity(ctx context.Context, userID string, in usecase.SetItemInput) (usecase.CartView, error)
	Clear(ctx context.Context, userID string) error
}

type checkoutService interface {
	Checkout(ctx context.Context, userID string, in usecase.CheckoutInput) (model.Order, error)
	ListByUser(ctx context.Context, userID string) ([]model.Order, error)
}

// /api/profile/cart のHTTP
type CartHandler struct {
	carts  cartService
	orders checkoutService
}

// DI
func NewCartHandler(carts cartService, orders checkoutService) *CartHandler {
	return &CartHandler{carts: carts, orders: orders}
}

type checkoutResponse struct {
	Order model.Order `json:"order"`
}

// /api/profile/cart, /api/profile/cart/order を登録
func (h *CartHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/api/profile/cart")
	g.Use(auth)

	g.GET("", h.getCart)
	g.PUT("", h.putItem)
	g.DELETE("", h.clearCart)
	g.PUT("/order", h.checkout)
	g.GET("/order", h.listOrders)
}

func (h *CartHandler) getCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return usecase.ErrUnauthorized
	}

	cart, err := h.carts.FindOrCreateOpenCart(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cart.Items)
}

func (h *CartHandler) putItem(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return usecase.ErrUnauthorized
	}

	var req usecase.SetItemInput
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cart, err := h.carts.SetItemQuantity(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cart.Items)
}

func (h *CartHandler) clearCart(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return usecase.ErrUnauthorized
	}

	if err := h.carts.Clear(c.Request().Context(), userID); err != nil {
		return err
	}

	return c.NoContent(http.StatusOK)
}

func (h *CartHandler) checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return usecase.ErrUnauthorized
	}

	var req usecase.CheckoutInput
	if err := c.Bind(&req); err != nil {
		return err
	}

	order, err := h.orders.Checkout(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, checkoutResponse{Order: order})
}

// ログインユーザーの注文一覧
func (h *CartHandler) listOrders(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return usecase.ErrUnauthorized
	}

	orders, err := h.orders.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, orders)
}
