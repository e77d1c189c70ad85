package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"cartservice/internal/handler"
	"cartservice/internal/infra/telemetry"
	"cartservice/internal/middleware"
	"cartservice/internal/validator"

	"github.com/aws/aws-lambda-go/events"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Options struct {
	Port        string
	ServiceName string
	Logger      *slog.Logger
	Metrics     *telemetry.ServerMetrics
	Auth        echo.MiddlewareFunc
	Handlers    Handlers
}

type Server struct {
	http *http.Server
}

// echoの組み立て（ミドルウェア・エラーハンドラ・ルート）
func New(opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = handler.ErrorHandler(opts.Logger, time.Now)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())
	e.Use(middleware.Metrics(opts.Metrics))
	e.Use(middleware.RequestLogger(opts.Logger))

	e.GET("/metrics", echo.WrapHandler(opts.Metrics.Handler()))
	RegisterRoutes(e, opts.Auth, opts.Handlers)

	return &Server{
		http: &http.Server{
			Addr:              ":" + opts.Port,
			Handler:           otelhttp.NewHandler(e, opts.ServiceName),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// otelhttp込みのハンドラ
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// API Gateway(REST)用。ローカルと同じHandler()を通す
func (s *Server) LambdaHandler() func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return httpadapter.New(s.Handler()).ProxyWithContext
}

// Shutdownされるまでブロックする
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
