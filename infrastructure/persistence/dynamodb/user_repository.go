package dynamodb

import (
	"context"
	"fmt"
	"time"

	"wordaday-backend/application/ports"
	"wordaday-backend/domain/users"
	"wordaday-backend/domain/words"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// UserRepository implements ports.ProfileRepository on the users table,
// keyed by userId alone.
type UserRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewUserRepository creates a profile repository.
func NewUserRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ProfileRepository {
	return &UserRepository{client: client, tableName: tableName, logger: logger}
}

// profileItem is the DynamoDB item structure for a user profile. Nested
// preference structures are stored as maps via attributevalue.
type profileItem struct {
	UserID                  string                        `dynamodbav:"userId"`
	Email                   string                        `dynamodbav:"email,omitempty"`
	Name                    string                        `dynamodbav:"name,omitempty"`
	AgeGroup                string                        `dynamodbav:"ageGroup"`
	Context                 string                        `dynamodbav:"context"`
	ExamPrep                string                        `dynamodbav:"examPrep,omitempty"`
	Timezone                string                        `dynamodbav:"timezone"`
	Language                string                        `dynamodbav:"language"`
	NotificationPreferences users.NotificationPreferences `dynamodbav:"notificationPreferences"`
	ContactInfo             users.ContactInfo             `dynamodbav:"contactInfo"`
	LearningPatterns        users.LearningPatterns        `dynamodbav:"learningPatterns"`
	CreatedAt               string                        `dynamodbav:"createdAt,omitempty"`
	UpdatedAt               string                        `dynamodbav:"updatedAt,omitempty"`
	LastLoginAt             string                        `dynamodbav:"lastLoginAt,omitempty"`
}

func toProfileItem(profile *users.Profile) profileItem {
	item := profileItem{
		UserID:                  profile.UserID,
		Email:                   profile.Email,
		Name:                    profile.Name,
		AgeGroup:                string(profile.AgeGroup),
		Context:                 profile.Context,
		ExamPrep:                profile.ExamPrep,
		Timezone:                profile.Timezone,
		Language:                profile.Language,
		NotificationPreferences: profile.NotificationPreferences,
		ContactInfo:             profile.ContactInfo,
		LearningPatterns:        profile.LearningPatterns,
	}
	if !profile.CreatedAt.IsZero() {
		item.CreatedAt = profile.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !profile.UpdatedAt.IsZero() {
		item.UpdatedAt = profile.UpdatedAt.UTC().Format(time.RFC3339)
	}
	if !profile.LastLoginAt.IsZero() {
		item.LastLoginAt = profile.LastLoginAt.UTC().Format(time.RFC3339)
	}
	return item
}

func (i profileItem) toProfile() users.Profile {
	createdAt, _ := time.Parse(time.RFC3339, i.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, i.UpdatedAt)
	lastLoginAt, _ := time.Parse(time.RFC3339, i.LastLoginAt)
	return users.Profile{
		UserID:                  i.UserID,
		Email:                   i.Email,
		Name:                    i.Name,
		AgeGroup:                words.AgeGroup(i.AgeGroup),
		Context:                 i.Context,
		ExamPrep:                i.ExamPrep,
		Timezone:                i.Timezone,
		Language:                i.Language,
		NotificationPreferences: i.NotificationPreferences,
		ContactInfo:             i.ContactInfo,
		LearningPatterns:        i.LearningPatterns,
		CreatedAt:               createdAt,
		UpdatedAt:               updatedAt,
		LastLoginAt:             lastLoginAt,
	}
}

// Get returns the profile for userID, or (nil, nil) when absent.
func (r *UserRepository) Get(ctx context.Context, userID string) (*users.Profile, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"userId": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if result.Item == nil {
		return nil, nil
	}

	var item profileItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	profile := item.toProfile()
	return &profile, nil
}

// Put stores a profile.
func (r *UserRepository) Put(ctx context.Context, profile *users.Profile) error {
	av, err := attributevalue.MarshalMap(toProfileItem(profile))
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("failed to put profile: %w", err)
	}
	return nil
}

// ListAll returns every profile, following scan pagination.
func (r *UserRepository) ListAll(ctx context.Context) ([]users.Profile, error) {
	var profiles []users.Profile
	var startKey map[string]types.AttributeValue

	for {
		result, err := r.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan profiles: %w", err)
		}

		for _, raw := range result.Items {
			var item profileItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				r.logger.Warn("Skipping unreadable profile item", zap.Error(err))
				continue
			}
			profiles = append(profiles, item.toProfile())
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}
	return profiles, nil
}
