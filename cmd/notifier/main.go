// Command notifier dispatches daily word notifications. Triggered by an
// EventBridge schedule every hour on the hour.
package main

import (
	"context"
	"log"

	"wordaday-backend/application/services"
	"wordaday-backend/infrastructure/config"
	"wordaday-backend/infrastructure/di"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

var container *di.Container

func init() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	container, err = di.NewContainer(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
}

// Handler runs one hourly dispatch pass.
func Handler(ctx context.Context, event events.CloudWatchEvent) (*services.DispatchReport, error) {
	container.Logger.Info("Notification dispatch triggered",
		zap.Time("time", event.Time),
	)

	report, err := container.Notifier.DispatchDue(ctx)
	if err != nil {
		container.Logger.Error("Notification dispatch failed", zap.Error(err))
		return nil, err
	}
	return report, nil
}

func main() {
	lambda.Start(Handler)
}
