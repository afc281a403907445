package media

import (
	"bytes"
	"context"
	"fmt"

	"wordaday-backend/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// S3MediaStore implements ports.MediaStore on an S3 bucket. Objects are
// keyed by word so re-enriching a word replaces its assets.
type S3MediaStore struct {
	client *s3.Client
	bucket string
	region string
	logger *zap.Logger
}

// NewS3MediaStore creates an S3-backed media store.
func NewS3MediaStore(client *s3.Client, bucket, region string, logger *zap.Logger) ports.MediaStore {
	return &S3MediaStore{client: client, bucket: bucket, region: region, logger: logger}
}

// StoreAudio uploads pronunciation audio and returns its public URL.
func (s *S3MediaStore) StoreAudio(ctx context.Context, word string, data []byte) (string, error) {
	return s.put(ctx, fmt.Sprintf("audio/%s.mp3", word), "audio/mpeg", data)
}

// StoreImage uploads an illustration and returns its public URL.
func (s *S3MediaStore) StoreImage(ctx context.Context, word string, data []byte) (string, error) {
	return s.put(ctx, fmt.Sprintf("images/%s.jpg", word), "image/jpeg", data)
}

func (s *S3MediaStore) put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if s.bucket == "" {
		return "", fmt.Errorf("media bucket not configured")
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	s.logger.Debug("Stored media object",
		zap.String("key", key),
		zap.Int("bytes", len(data)),
	)
	return url, nil
}
