package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"cartservice/internal/infra/telemetry"
	"cartservice/internal/usecase"

	"github.com/labstack/echo/v4"
)

// routeはc.Path()（登録パターン）で集計する。RequestLoggerより外側に置く
func Metrics(m *telemetry.ServerMetrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil && !c.Response().Committed {
				status = statusFromError(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.LatencyMS.WithLabelValues(method, route).Observe(float64(time.Since(start).Microseconds()) / 1000)
			return err
		}
	}
}

func statusFromError(err error) int {
	var ee *echo.HTTPError
	if errors.As(err, &ee) {
		return ee.Code
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return he.Status
	}
	return http.StatusInternalServerError
}
