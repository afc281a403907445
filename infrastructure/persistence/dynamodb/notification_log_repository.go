package dynamodb

import (
	"context"
	"fmt"
	"time"

	"wordaday-backend/application/ports"
	"wordaday-backend/domain/notifications"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// NotificationLogRepository implements ports.NotificationLogRepository.
// Items carry a TTL attribute so DynamoDB expires them after the retention
// window.
type NotificationLogRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewNotificationLogRepository creates a notification log repository.
func NewNotificationLogRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.NotificationLogRepository {
	return &NotificationLogRepository{client: client, tableName: tableName, logger: logger}
}

type notificationLogItem struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	LogID        string `dynamodbav:"logId"`
	UserID       string `dynamodbav:"userId"`
	Date         string `dynamodbav:"date"`
	Channel      string `dynamodbav:"channel"`
	Status       string `dynamodbav:"status"`
	ErrorMessage string `dynamodbav:"errorMessage,omitempty"`
	DeliveredAt  string `dynamodbav:"deliveredAt"`
	ExpiresAt    int64  `dynamodbav:"expiresAt"`
}

// Put stores a delivery log with its expiry timestamp.
func (r *NotificationLogRepository) Put(ctx context.Context, log *notifications.Log) error {
	item := notificationLogItem{
		PK:           fmt.Sprintf("USER#%s", log.UserID),
		SK:           fmt.Sprintf("NOTIFY#%s#%s", log.Date, log.LogID),
		LogID:        log.LogID,
		UserID:       log.UserID,
		Date:         log.Date,
		Channel:      log.Channel,
		Status:       log.Status,
		ErrorMessage: log.ErrorMessage,
		DeliveredAt:  log.DeliveredAt.UTC().Format(time.RFC3339),
		ExpiresAt:    log.DeliveredAt.Add(notifications.LogTTL).Unix(),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal notification log: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put notification log: %w", err)
	}
	return nil
}
