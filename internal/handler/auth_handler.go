package handler

import (
	"context"
	"net/http"

	"cartservice/internal/usecase"

	"github.com/labstack/echo/v4"
)

type authService interface {
	Register(ctx context.Context, in usecase.RegisterInput) (usecase.RegisterOutput, error)
	Login(ctx context.Context, in usecase.LoginInput, loginType string) (usecase.TokenOutput, error)
}

// /api/auth のHTTP（認証なし）
type AuthHandler struct {
	uc authService
}

// DI
func NewAuthHandler(uc authService) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// /api/auth/login のボディ。typeはクエリでも指定できる
type loginRequest struct {
	usecase.LoginInput
	Type string `json:"type"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/auth")
	g.POST("/register", h.register)
	g.POST("/login", h.login)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req usecase.RegisterInput
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	out, err := h.uc.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req.LoginInput); err != nil {
		return err
	}
	if req.Type == "" {
		req.Type = c.QueryParam("type")
	}

	out, err := h.uc.Login(c.Request().Context(), req.LoginInput, req.Type)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, out)
}
