package services

import (
	"context"
	"fmt"

	"wordaday-backend/application/ports"

	"go.uber.org/zap"
)

// BatchResult is the per-user outcome of a daily generation run.
type BatchResult struct {
	UserID  string `json:"userId"`
	Success bool   `json:"success"`
	Word    string `json:"word,omitempty"`
	Method  string `json:"method,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BatchReport summarizes one daily generation run.
type BatchReport struct {
	Processed  int           `json:"processed"`
	Successful int           `json:"successful"`
	Failed     int           `json:"failed"`
	Results    []BatchResult `json:"results"`
}

// BatchGenerator runs the orchestrator for every user. Triggered daily at
// midnight UTC; per-user failures are isolated.
type BatchGenerator struct {
	profiles     ports.ProfileRepository
	orchestrator *Orchestrator
	logger       *zap.Logger
}

// NewBatchGenerator creates the daily batch runner.
func NewBatchGenerator(profiles ports.ProfileRepository, orchestrator *Orchestrator, logger *zap.Logger) *BatchGenerator {
	return &BatchGenerator{profiles: profiles, orchestrator: orchestrator, logger: logger}
}

// Run generates a word for every registered user.
func (b *BatchGenerator) Run(ctx context.Context) (*BatchReport, error) {
	profiles, err := b.profiles.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	report := &BatchReport{Processed: len(profiles)}
	for i := range profiles {
		userID := profiles[i].UserID
		result, err := b.orchestrator.GenerateForUser(ctx, userID)
		if err != nil {
			b.logger.Error("Batch generation failed for user",
				zap.String("userID", userID),
				zap.Error(err),
			)
			report.Failed++
			report.Results = append(report.Results, BatchResult{
				UserID: userID,
				Error:  err.Error(),
			})
			continue
		}
		report.Successful++
		report.Results = append(report.Results, BatchResult{
			UserID:  userID,
			Success: true,
			Word:    result.Record.Word,
			Method:  string(result.Record.Method),
		})
	}

	b.logger.Info("Daily word generation completed",
		zap.Int("processed", report.Processed),
		zap.Int("successful", report.Successful),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}
