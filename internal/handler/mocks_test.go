package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"time"

	"cartservice/internal/domain/model"
	"cartservice/internal/middleware"
	"cartservice/internal/usecase"
	"cartservice/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// 本番と同じValidator / ErrorHandlerを載せたecho
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), func() time.Time { return testNow })
	return e
}

// 認証済みとしてuser_idを入れるだけ
func fakeAuth(userID string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.CtxUserIDKey, userID)
			return next(c)
		}
	}
}

func serve(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

type AuthServiceMock struct{ mock.Mock }

func (m *AuthServiceMock) Register(ctx context.Context, in usecase.RegisterInput) (usecase.RegisterOutput, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(usecase.RegisterOutput), args.Error(1)
}

func (m *AuthServiceMock) Login(ctx context.Context, in usecase.LoginInput, loginType string) (usecase.TokenOutput, error) {
	args := m.Called(ctx, in, loginType)
	return args.Get(0).(usecase.TokenOutput), args.Error(1)
}

type CartServiceMock struct{ mock.Mock }

func (m *CartServiceMock) FindOrCreateOpenCart(ctx context.Context, userID string) (usecase.CartView, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(usecase.CartView), args.Error(1)
}

func (m *CartServiceMock) SetItemQuantity(ctx context.Context, userID string, in usecase.SetItemInput) (usecase.CartView, error) {
	args := m.Called(ctx, userID, in)
	return args.Get(0).(usecase.CartView), args.Error(1)
}

func (m *CartServiceMock) Clear(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type OrderServiceMock struct{ mock.Mock }

func (m *OrderServiceMock) Checkout(ctx context.Context, userID string, in usecase.CheckoutInput) (model.Order, error) {
	args := m.Called(ctx, userID, in)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *OrderServiceMock) ListByUser(ctx context.Context, userID string) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *OrderServiceMock) List(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *OrderServiceMock) Create(ctx context.Context, userID string, in usecase.CreateOrderInput) (model.Order, error) {
	args := m.Called(ctx, userID, in)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *OrderServiceMock) Get(ctx context.Context, orderID string) (usecase.OrderView, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(usecase.OrderView), args.Error(1)
}

func (m *OrderServiceMock) GetStatusHistory(ctx context.Context, orderID string) ([]model.StatusHistory, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).([]model.StatusHistory), args.Error(1)
}

func (m *OrderServiceMock) UpdateStatus(ctx context.Context, orderID string, in usecase.UpdateStatusInput) (model.Order, error) {
	args := m.Called(ctx, orderID, in)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *OrderServiceMock) Delete(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}
