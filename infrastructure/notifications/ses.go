package notifications

import (
	"context"
	"fmt"

	"wordaday-backend/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

// SESEmailSender implements ports.EmailSender on Amazon SES.
type SESEmailSender struct {
	client *ses.Client
	sender string
	logger *zap.Logger
}

// NewSESEmailSender creates an SES email sender. sender must be a verified
// identity.
func NewSESEmailSender(client *ses.Client, sender string, logger *zap.Logger) ports.EmailSender {
	return &SESEmailSender{client: client, sender: sender, logger: logger}
}

// SendEmail delivers one HTML email.
func (s *SESEmailSender) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data:    aws.String(htmlBody),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("email delivery failed: %w", err)
	}

	s.logger.Debug("Email sent", zap.String("subject", subject))
	return nil
}
