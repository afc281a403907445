package dynamodb

import (
	"context"
	"fmt"

	"wordaday-backend/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// UsageRepository implements ports.UsageRepository. One item per
// (userID, date) with an atomically incremented counter.
type UsageRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewUsageRepository creates an AI usage repository.
func NewUsageRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.UsageRepository {
	return &UsageRepository{client: client, tableName: tableName, logger: logger}
}

func usageKey(userID, date string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: fmt.Sprintf("USER#%s", userID)},
		"SK": &types.AttributeValueMemberS{Value: fmt.Sprintf("USAGE#%s", date)},
	}
}

// Count returns how many words were generated for userID on date.
func (r *UsageRepository) Count(ctx context.Context, userID, date string) (int, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            usageKey(userID, date),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get usage count: %w", err)
	}
	if result.Item == nil {
		return 0, nil
	}

	attr, ok := result.Item["generatedCount"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, nil
	}
	count := 0
	if _, err := fmt.Sscanf(attr.Value, "%d", &count); err != nil {
		return 0, fmt.Errorf("failed to parse usage count %q: %w", attr.Value, err)
	}
	return count, nil
}

// Increment records one more generated word. ADD creates the item on first
// use; the provider list records which services produced the words.
func (r *UsageRepository) Increment(ctx context.Context, userID, date, provider string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              usageKey(userID, date),
		UpdateExpression: aws.String("ADD generatedCount :one SET providers = list_append(if_not_exists(providers, :empty), :provider)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one":   &types.AttributeValueMemberN{Value: "1"},
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":provider": &types.AttributeValueMemberL{Value: []types.AttributeValue{
				&types.AttributeValueMemberS{Value: provider},
			}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}
	return nil
}
