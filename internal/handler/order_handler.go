package handler

import (
	"context"
	"net/http"

	"cartservice/internal/domain/model"
	"cartservice/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type orderService interface {
	List(ctx context.Context) ([]model.Order, error)
	Create(ctx context.Context, userID string, in usecase.CreateOrderInput) (model.Order, error)
	Get(ctx context.Context, orderID string) (usecase.OrderView, error)
	GetStatusHistory(ctx context.Context, orderID string) ([]model.StatusHistory, error)
	UpdateStatus(ctx context.Context, orderID string, in usecase.UpdateStatusInput) (model.Order, error)
	Delete(ctx context.Context, orderID string) error
}

// /api/orders のHTTP
type OrderHandler struct {
	uc orderService
}

// DI
func NewOrderHandler(uc orderService) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/api/orders")
	g.Use(auth)

	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.detail)
	g.GET("/:id/history", h.history)
	g.PUT("/:id/status", h.updateStatus)
	g.DELETE("/:id", h.delete)
}

func (h *OrderHandler) list(c echo.Context) error {
	orders, err := h.uc.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return usecase.ErrUnauthorized
	}

	var req usecase.CreateOrderInput
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.uc.Create(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, order)
}

// :id はuuidのみ
func orderIDParam(c echo.Context) (string, error) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", usecase.ErrValidation("id must be a valid UUID")
	}
	return id, nil
}

func (h *OrderHandler) detail(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return err
	}

	view, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// 新しい順
func (h *OrderHandler) history(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return err
	}

	rows, err := h.uc.GetStatusHistory(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return err
	}

	var req usecase.UpdateStatusInput
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	order, err := h.uc.UpdateStatus(c.Request().Context(), id, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) delete(c echo.Context) error {
	id, err := orderIDParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
