// Package dynamodb implements the persistence ports on DynamoDB.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wordaday-backend/application/ports"
	"wordaday-backend/domain/words"
	apperrors "wordaday-backend/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// WordRecordRepository implements ports.WordRecordRepository on a single
// table keyed PK=USER#<userID>, SK=DATE#<date>.
type WordRecordRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewWordRecordRepository creates a word record repository.
func NewWordRecordRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.WordRecordRepository {
	return &WordRecordRepository{client: client, tableName: tableName, logger: logger}
}

// wordItem is the DynamoDB item structure for a daily word record.
type wordItem struct {
	PK             string   `dynamodbav:"PK"`
	SK             string   `dynamodbav:"SK"`
	EntityType     string   `dynamodbav:"EntityType"`
	UserID         string   `dynamodbav:"UserID"`
	Date           string   `dynamodbav:"Date"`
	WordID         string   `dynamodbav:"WordID"`
	Word           string   `dynamodbav:"Word"`
	Definition     string   `dynamodbav:"Definition"`
	PartOfSpeech   string   `dynamodbav:"PartOfSpeech,omitempty"`
	Pronunciation  string   `dynamodbav:"Pronunciation,omitempty"`
	Syllables      string   `dynamodbav:"Syllables,omitempty"`
	Difficulty     int      `dynamodbav:"Difficulty"`
	Sentences      []string `dynamodbav:"Sentences"`
	Synonyms       []string `dynamodbav:"Synonyms,omitempty"`
	Antonyms       []string `dynamodbav:"Antonyms,omitempty"`
	ImageURL       string   `dynamodbav:"ImageURL,omitempty"`
	AudioURL       string   `dynamodbav:"AudioURL,omitempty"`
	UserContext    string   `dynamodbav:"UserContext,omitempty"`
	PracticeStatus string   `dynamodbav:"practiceStatus"`
	Rating         int      `dynamodbav:"Rating,omitempty"`
	Method         string   `dynamodbav:"GenerationMethod"`
	Provider       string   `dynamodbav:"Provider,omitempty"`
	CreatedAt      string   `dynamodbav:"CreatedAt"`
}

func wordPK(userID string) string { return fmt.Sprintf("USER#%s", userID) }
func wordSK(date string) string   { return fmt.Sprintf("DATE#%s", date) }

func toWordItem(record *words.WordRecord) wordItem {
	return wordItem{
		PK:             wordPK(record.UserID),
		SK:             wordSK(record.Date),
		EntityType:     "WORD",
		UserID:         record.UserID,
		Date:           record.Date,
		WordID:         record.WordID,
		Word:           record.Word,
		Definition:     record.Definition,
		PartOfSpeech:   record.PartOfSpeech,
		Pronunciation:  record.Pronunciation,
		Syllables:      record.Syllables,
		Difficulty:     record.Difficulty,
		Sentences:      record.Sentences,
		Synonyms:       record.Synonyms,
		Antonyms:       record.Antonyms,
		ImageURL:       record.ImageURL,
		AudioURL:       record.AudioURL,
		UserContext:    record.UserContext,
		PracticeStatus: string(record.Status),
		Rating:         record.Rating,
		Method:         string(record.Method),
		Provider:       record.Provider,
		CreatedAt:      record.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (i wordItem) toRecord() words.WordRecord {
	createdAt, _ := time.Parse(time.RFC3339, i.CreatedAt)
	return words.WordRecord{
		UserID:        i.UserID,
		Date:          i.Date,
		WordID:        i.WordID,
		Word:          i.Word,
		Definition:    i.Definition,
		PartOfSpeech:  i.PartOfSpeech,
		Pronunciation: i.Pronunciation,
		Syllables:     i.Syllables,
		Difficulty:    i.Difficulty,
		Sentences:     i.Sentences,
		Synonyms:      i.Synonyms,
		Antonyms:      i.Antonyms,
		ImageURL:      i.ImageURL,
		AudioURL:      i.AudioURL,
		UserContext:   i.UserContext,
		Status:        words.PracticeStatus(i.PracticeStatus),
		Rating:        i.Rating,
		Method:        words.GenerationMethod(i.Method),
		Provider:      i.Provider,
		CreatedAt:     createdAt,
	}
}

// Get returns the record for (userID, date), or (nil, nil) when absent.
func (r *WordRecordRepository) Get(ctx context.Context, userID, date string) (*words.WordRecord, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: wordPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: wordSK(date)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get word record: %w", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var item wordItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal word record: %w", err)
	}
	record := item.toRecord()
	return &record, nil
}

// Put stores a record unconditionally, overwriting any existing one.
func (r *WordRecordRepository) Put(ctx context.Context, record *words.WordRecord) error {
	av, err := attributevalue.MarshalMap(toWordItem(record))
	if err != nil {
		return fmt.Errorf("failed to marshal word record: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put word record: %w", err)
	}
	return nil
}

// PutIfAbsentOrSkipped stores a record only when no record exists for the
// key or the existing one is skipped. A concurrent writer winning the race
// surfaces as a conflict error.
func (r *WordRecordRepository) PutIfAbsentOrSkipped(ctx context.Context, record *words.WordRecord) error {
	av, err := attributevalue.MarshalMap(toWordItem(record))
	if err != nil {
		return fmt.Errorf("failed to marshal word record: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(PK) OR practiceStatus = :skipped"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":skipped": &types.AttributeValueMemberS{Value: string(words.StatusSkipped)},
		},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return apperrors.NewConflictError(
				fmt.Sprintf("word already stored for %s on %s", record.UserID, record.Date))
		}
		return fmt.Errorf("failed to put word record: %w", err)
	}
	return nil
}

// QueryRange returns records with dates in [start, end], oldest first.
func (r *WordRecordRepository) QueryRange(ctx context.Context, userID, start, end string) ([]words.WordRecord, error) {
	return r.query(ctx, userID, start, end, 0, true)
}

// QueryRecent returns up to limit records, newest first.
func (r *WordRecordRepository) QueryRecent(ctx context.Context, userID, start, end string, limit int) ([]words.WordRecord, error) {
	return r.query(ctx, userID, start, end, limit, false)
}

func (r *WordRecordRepository) query(ctx context.Context, userID, start, end string, limit int, forward bool) ([]words.WordRecord, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(wordPK(userID)))
	if start != "" {
		keyCond = keyCond.And(expression.Key("SK").Between(
			expression.Value(wordSK(start)),
			expression.Value(wordSK(end)),
		))
	} else if end != "" {
		keyCond = keyCond.And(expression.Key("SK").LessThanEqual(expression.Value(wordSK(end))))
	}

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build query expression: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(forward),
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(limit))
	}

	result, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query word records: %w", err)
	}

	records := make([]words.WordRecord, 0, len(result.Items))
	for _, raw := range result.Items {
		var item wordItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("Skipping unreadable word item", zap.Error(err))
			continue
		}
		records = append(records, item.toRecord())
	}
	return records, nil
}

// UpdatePractice sets the practice status and rating on an existing record.
func (r *WordRecordRepository) UpdatePractice(ctx context.Context, userID, date string, status words.PracticeStatus, rating int) error {
	update := expression.Set(expression.Name("practiceStatus"), expression.Value(string(status)))
	if rating > 0 {
		update = update.Set(expression.Name("Rating"), expression.Value(rating))
	}

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(expression.AttributeExists(expression.Name("PK"))).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: wordPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: wordSK(date)},
		},
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return apperrors.NewNotFoundError(fmt.Sprintf("word record for %s on %s", userID, date))
		}
		return fmt.Errorf("failed to update practice status: %w", err)
	}
	return nil
}
