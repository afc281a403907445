// Command enricher builds word bank entries from raw word lists. Invoked
// manually or by a low-frequency schedule to grow the catalog.
package main

import (
	"context"
	"log"

	"wordaday-backend/infrastructure/config"
	"wordaday-backend/infrastructure/di"

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

// EnrichRequest is the invocation payload.
type EnrichRequest struct {
	Words []string `json:"words"`
}

// EnrichResponse reports the batch outcome.
type EnrichResponse struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Handler enriches each requested word.
func Handler(ctx context.Context, req EnrichRequest) (*EnrichResponse, error) {
	container.Logger.Info("Enrichment triggered",
		zap.Int("words", len(req.Words)),
	)

	succeeded, failed := container.Enricher.EnrichBatch(ctx, req.Words)
	return &EnrichResponse{Succeeded: succeeded, Failed: failed}, nil
}

func main() {
	lambda.Start(Handler)
}
