package notifications

import (
	"context"
	"fmt"

	"wordaday-backend/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"go.uber.org/zap"
)

// SNSSMSSender implements ports.SMSSender on Amazon SNS direct SMS.
type SNSSMSSender struct {
	client *sns.Client
	logger *zap.Logger
}

// NewSNSSMSSender creates an SNS SMS sender.
func NewSNSSMSSender(client *sns.Client, logger *zap.Logger) ports.SMSSender {
	return &SNSSMSSender{client: client, logger: logger}
}

// SendSMS delivers one text message to an E.164 phone number.
func (s *SNSSMSSender) SendSMS(ctx context.Context, phoneNumber, message string) error {
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(phoneNumber),
		Message:     aws.String(message),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {
				DataType:    aws.String("String"),
				StringValue: aws.String("Transactional"),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sms delivery failed: %w", err)
	}

	s.logger.Debug("SMS sent")
	return nil
}
