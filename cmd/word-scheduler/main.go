// Command word-scheduler runs the daily batch generation. Triggered by an
// EventBridge schedule at midnight UTC.
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

// Handler runs one batch generation pass.
func Handler(ctx context.Context, event events.CloudWatchEvent) (*services.BatchReport, error) {
	container.Logger.Info("Daily word generation triggered",
		zap.String("source", event.Source),
		zap.Time("time", event.Time),
	)

	report, err := container.BatchGenerator.Run(ctx)
	if err != nil {
		container.Logger.Error("Batch generation failed", zap.Error(err))
		return nil, err
	}
	return report, nil
}

func main() {
	lambda.Start(Handler)
}
