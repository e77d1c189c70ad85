package main

import (
	"context"
	"log/slog"
	"os"

	"cartservice/internal/app"
	"cartservice/internal/config"

	"github.com/aws/aws-lambda-go/lambda"
)

// API Gateway(REST) -> otelhttp -> echo。組み立てはコールドスタートで1回だけ
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	a, err := app.Build(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("build app", slog.String("error", err.Error()))
		os.Exit(1)
	}

	lambda.Start(a.Server.LambdaHandler())
}
