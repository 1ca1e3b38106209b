package main

// Build the Lambda handler binary:
//   GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-http

import (
	"context"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"docstore-backend/internal/bootstrap"
	"docstore-backend/internal/shared/config"
	"docstore-backend/internal/shared/server/respond"
	"docstore-backend/internal/shared/telemetry"
)

var (
	initOnce sync.Once
	initErr  error
	app      *bootstrap.App
)

func initApp(ctx context.Context) {
	cfg := config.Load()
	app, initErr = bootstrap.Build(ctx, cfg)
}

func handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	initOnce.Do(func() { initApp(ctx) })
	if initErr != nil {
		telemetry.Error("bootstrap.failed", map[string]any{"err": initErr.Error()})
		return respond.Error(http.StatusInternalServerError, "internal_error", "bootstrap failed"), nil
	}
	return app.Handler.Handle(ctx, req)
}

func main() {
	lambda.Start(handler)
}
