package dynamodb

import (
	"context"
	"fmt"

	"wordaday-backend/application/ports"
	"wordaday-backend/domain/words"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"
)

// WordBankRepository implements ports.WordBankRepository. The bank table is
// small and read via filtered scans; the generation path caps the scan at
// its candidate limit.
type WordBankRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewWordBankRepository creates a word bank repository.
func NewWordBankRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.WordBankRepository {
	return &WordBankRepository{client: client, tableName: tableName, logger: logger}
}

// bankItem is the DynamoDB item structure for a bank entry.
type bankItem struct {
	WordID        string   `dynamodbav:"wordId"`
	Word          string   `dynamodbav:"word"`
	Definition    string   `dynamodbav:"definition"`
	PartOfSpeech  string   `dynamodbav:"partOfSpeech,omitempty"`
	Pronunciation string   `dynamodbav:"pronunciation,omitempty"`
	Syllables     string   `dynamodbav:"syllables,omitempty"`
	Difficulty    int      `dynamodbav:"difficulty"`
	Examples      []string `dynamodbav:"examples,omitempty"`
	Synonyms      []string `dynamodbav:"synonyms,omitempty"`
	Antonyms      []string `dynamodbav:"antonyms,omitempty"`
	AgeGroups     []string `dynamodbav:"ageGroups,omitempty"`
	Category      string   `dynamodbav:"category,omitempty"`
	AudioURL      string   `dynamodbav:"audioUrl,omitempty"`
	ImageURL      string   `dynamodbav:"imageUrl,omitempty"`
}

func toBankItem(entry *words.BankEntry) bankItem {
	ageGroups := make([]string, 0, len(entry.AgeGroups))
	for _, a := range entry.AgeGroups {
		ageGroups = append(ageGroups, string(a))
	}
	return bankItem{
		WordID:        entry.WordID,
		Word:          entry.Word,
		Definition:    entry.Definition,
		PartOfSpeech:  entry.PartOfSpeech,
		Pronunciation: entry.Pronunciation,
		Syllables:     entry.Syllables,
		Difficulty:    entry.Difficulty,
		Examples:      entry.Examples,
		Synonyms:      entry.Synonyms,
		Antonyms:      entry.Antonyms,
		AgeGroups:     ageGroups,
		Category:      entry.Category,
		AudioURL:      entry.AudioURL,
		ImageURL:      entry.ImageURL,
	}
}

func (i bankItem) toEntry() words.BankEntry {
	ageGroups := make([]words.AgeGroup, 0, len(i.AgeGroups))
	for _, a := range i.AgeGroups {
		ageGroups = append(ageGroups, words.AgeGroup(a))
	}
	return words.BankEntry{
		WordID:        i.WordID,
		Word:          i.Word,
		Definition:    i.Definition,
		PartOfSpeech:  i.PartOfSpeech,
		Pronunciation: i.Pronunciation,
		Syllables:     i.Syllables,
		Difficulty:    i.Difficulty,
		Examples:      i.Examples,
		Synonyms:      i.Synonyms,
		Antonyms:      i.Antonyms,
		AgeGroups:     ageGroups,
		Category:      i.Category,
		AudioURL:      i.AudioURL,
		ImageURL:      i.ImageURL,
	}
}

// ScanByDifficulty returns up to limit entries with difficulty in [low, high].
func (r *WordBankRepository) ScanByDifficulty(ctx context.Context, low, high, limit int) ([]words.BankEntry, error) {
	filter := expression.Name("difficulty").Between(expression.Value(low), expression.Value(high))
	expr, err := expression.NewBuilder().WithFilter(filter).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build scan expression: %w", err)
	}

	input := &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(limit))
	}

	result, err := r.client.Scan(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to scan word bank: %w", err)
	}

	entries := make([]words.BankEntry, 0, len(result.Items))
	for _, raw := range result.Items {
		var item bankItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			r.logger.Warn("Skipping unreadable bank item", zap.Error(err))
			continue
		}
		entries = append(entries, item.toEntry())
	}
	return entries, nil
}

// Put stores a bank entry, overwriting by wordId.
func (r *WordBankRepository) Put(ctx context.Context, entry *words.BankEntry) error {
	av, err := attributevalue.MarshalMap(toBankItem(entry))
	if err != nil {
		return fmt.Errorf("failed to marshal bank entry: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put bank entry: %w", err)
	}
	return nil
}
