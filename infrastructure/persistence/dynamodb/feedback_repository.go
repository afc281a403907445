package dynamodb

import (
	"context"
	"fmt"
	"time"

	"wordaday-backend/application/ports"
	"wordaday-backend/domain/words"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// FeedbackRepository implements ports.FeedbackRepository. Feedback is
// append-only, keyed PK=USER#<userID>, SK=FEEDBACK#<date>#<feedbackId>.
type FeedbackRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewFeedbackRepository creates a feedback repository.
func NewFeedbackRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.FeedbackRepository {
	return &FeedbackRepository{client: client, tableName: tableName, logger: logger}
}

type feedbackItem struct {
	PK                string `dynamodbav:"PK"`
	SK                string `dynamodbav:"SK"`
	EntityType        string `dynamodbav:"EntityType"`
	FeedbackID        string `dynamodbav:"feedbackId"`
	UserID            string `dynamodbav:"userId"`
	WordID            string `dynamodbav:"wordId"`
	Date              string `dynamodbav:"date"`
	Rating            int    `dynamodbav:"rating,omitempty"`
	Practiced         bool   `dynamodbav:"practiced"`
	Encountered       bool   `dynamodbav:"encountered"`
	Difficulty        string `dynamodbav:"difficulty"`
	AdditionalContext string `dynamodbav:"additionalContext,omitempty"`
	Comments          string `dynamodbav:"comments,omitempty"`
	Timestamp         string `dynamodbav:"timestamp"`
}

// Put stores a feedback row.
func (r *FeedbackRepository) Put(ctx context.Context, fb *words.Feedback) error {
	item := feedbackItem{
		PK:                fmt.Sprintf("USER#%s", fb.UserID),
		SK:                fmt.Sprintf("FEEDBACK#%s#%s", fb.Date, fb.FeedbackID),
		EntityType:        "FEEDBACK",
		FeedbackID:        fb.FeedbackID,
		UserID:            fb.UserID,
		WordID:            fb.WordID,
		Date:              fb.Date,
		Rating:            fb.Rating,
		Practiced:         fb.Practiced,
		Encountered:       fb.Encountered,
		Difficulty:        fb.Difficulty,
		AdditionalContext: fb.AdditionalContext,
		Comments:          fb.Comments,
		Timestamp:         fb.Timestamp.UTC().Format(time.RFC3339),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put feedback: %w", err)
	}
	return nil
}
