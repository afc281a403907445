// Package di wires the application together.
package di

import (
	"context"

	"wordaday-backend/application/ports"
	"wordaday-backend/application/services"
	"wordaday-backend/infrastructure/ai"
	"wordaday-backend/infrastructure/config"
	"wordaday-backend/infrastructure/media"
	"wordaday-backend/infrastructure/messaging/eventbridge"
	appnotifications "wordaday-backend/infrastructure/notifications"
	"wordaday-backend/infrastructure/observability"
	"wordaday-backend/infrastructure/persistence/dynamodb"
	"wordaday-backend/infrastructure/secrets"
	"wordaday-backend/pkg/auth"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsbedrock "github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	awssecrets "github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	awsses "github.com/aws/aws-sdk-go-v2/service/ses"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-xray-sdk-go/instrumentation/awsv2"
	"go.uber.org/zap"
)

// ProvideLogger creates the process logger.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates the shared AWS configuration, instrumented for
// X-Ray when tracing is enabled.
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return aws.Config{}, err
	}
	if cfg.EnableTracing {
		awsv2.AWSV2Instrumentor(&awsCfg.APIOptions)
	}
	return awsCfg, nil
}

// ProvideDynamoDBClient creates a DynamoDB client.
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client.
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client.
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideBedrockClient creates a Bedrock runtime client.
func ProvideBedrockClient(awsCfg aws.Config) *awsbedrock.Client {
	return awsbedrock.NewFromConfig(awsCfg)
}

// ProvideS3Client creates an S3 client.
func ProvideS3Client(awsCfg aws.Config) *awss3.Client {
	return awss3.NewFromConfig(awsCfg)
}

// ProvideSESClient creates an SES client.
func ProvideSESClient(awsCfg aws.Config) *awsses.Client {
	return awsses.NewFromConfig(awsCfg)
}

// ProvideSNSClient creates an SNS client.
func ProvideSNSClient(awsCfg aws.Config) *awssns.Client {
	return awssns.NewFromConfig(awsCfg)
}

// ProvideSecretsManagerClient creates a Secrets Manager client.
func ProvideSecretsManagerClient(awsCfg aws.Config) *awssecrets.Client {
	return awssecrets.NewFromConfig(awsCfg)
}

// ProvideWordRecordRepository creates the daily word repository.
func ProvideWordRecordRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.WordRecordRepository {
	return dynamodb.NewWordRecordRepository(client, cfg.WordsTable, logger)
}

// ProvideWordBankRepository creates the word bank repository.
func ProvideWordBankRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.WordBankRepository {
	return dynamodb.NewWordBankRepository(client, cfg.WordBankTable, logger)
}

// ProvideProfileRepository creates the profile repository.
func ProvideProfileRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ProfileRepository {
	return dynamodb.NewUserRepository(client, cfg.UsersTable, logger)
}

// ProvideFeedbackRepository creates the feedback repository.
func ProvideFeedbackRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.FeedbackRepository {
	return dynamodb.NewFeedbackRepository(client, cfg.FeedbackTable, logger)
}

// ProvideUsageRepository creates the AI usage repository.
func ProvideUsageRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.UsageRepository {
	return dynamodb.NewUsageRepository(client, cfg.UsageTable, logger)
}

// ProvideNotificationLogRepository creates the delivery log repository.
func ProvideNotificationLogRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.NotificationLogRepository {
	return dynamodb.NewNotificationLogRepository(client, cfg.NotificationLogsTable, logger)
}

// ProvideEventBus creates the EventBridge-backed event bus.
func ProvideEventBus(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventBus {
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetricsEmitter creates the CloudWatch metrics emitter, or a no-op
// when metrics are disabled.
func ProvideMetricsEmitter(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) ports.MetricsEmitter {
	if !cfg.EnableMetrics {
		return observability.NopEmitter{}
	}
	return observability.NewCloudWatchEmitter(client, cfg.MetricsNamespace, logger)
}

// ProvideWordProviders builds the provider fallback chain in configured
// priority order. Unknown names are ignored.
func ProvideWordProviders(cfg *config.Config, logger *zap.Logger) []ports.WordProvider {
	providers := make([]ports.WordProvider, 0, len(cfg.ProviderOrder))
	for _, name := range cfg.ProviderOrder {
		switch name {
		case "groq":
			providers = append(providers, ai.NewGroqProvider(cfg.GroqAPIKey, logger))
		case "openai":
			providers = append(providers, ai.NewOpenAIProvider(cfg.OpenAIAPIKey, logger))
		default:
			logger.Warn("Unknown word provider in PROVIDER_ORDER", zap.String("provider", name))
		}
	}
	return providers
}

// ProvideSentenceGenerator creates the Bedrock sentence generator.
func ProvideSentenceGenerator(client *awsbedrock.Client, cfg *config.Config, logger *zap.Logger) ports.SentenceGenerator {
	return ai.NewBedrockSentenceGenerator(client, cfg.BedrockModelID, logger)
}

// ProvideImageProvider creates the Unsplash image provider.
func ProvideImageProvider(cfg *config.Config, logger *zap.Logger) ports.ImageProvider {
	return media.NewUnsplashClient(cfg.UnsplashAccessKey, logger)
}

// ProvideDictionaryProvider creates the dictionary client.
func ProvideDictionaryProvider(cfg *config.Config, logger *zap.Logger) ports.DictionaryProvider {
	return media.NewMerriamWebsterClient(cfg.MerriamWebsterAPIKey, logger)
}

// ProvideAudioProvider creates the pronunciation audio client.
func ProvideAudioProvider(cfg *config.Config, logger *zap.Logger) ports.AudioProvider {
	return media.NewForvoClient(cfg.ForvoAPIKey, logger)
}

// ProvideMediaStore creates the S3 media store.
func ProvideMediaStore(client *awss3.Client, cfg *config.Config, logger *zap.Logger) ports.MediaStore {
	return media.NewS3MediaStore(client, cfg.MediaBucket, cfg.AWSRegion, logger)
}

// ProvidePushSender creates the Expo push sender.
func ProvidePushSender(logger *zap.Logger) ports.PushSender {
	return appnotifications.NewExpoPushSender(logger)
}

// ProvideEmailSender creates the SES email sender.
func ProvideEmailSender(client *awsses.Client, cfg *config.Config, logger *zap.Logger) ports.EmailSender {
	return appnotifications.NewSESEmailSender(client, cfg.SenderEmail, logger)
}

// ProvideSMSSender creates the SNS SMS sender.
func ProvideSMSSender(client *awssns.Client, logger *zap.Logger) ports.SMSSender {
	return appnotifications.NewSNSSMSSender(client, logger)
}

// ProvideRecencyTracker creates the recency exclusion tracker.
func ProvideRecencyTracker(records ports.WordRecordRepository, logger *zap.Logger) *services.RecencyTracker {
	return services.NewRecencyTracker(records, logger)
}

// ProvideWordSelector creates the bank selector.
func ProvideWordSelector(bank ports.WordBankRepository, logger *zap.Logger) *services.WordSelector {
	return services.NewWordSelector(bank, logger)
}

// ProvideAIWordGenerator creates the multi-provider generator.
func ProvideAIWordGenerator(
	providers []ports.WordProvider,
	images ports.ImageProvider,
	metrics ports.MetricsEmitter,
	logger *zap.Logger,
) *services.AIWordGenerator {
	return services.NewAIWordGenerator(providers, images, metrics, logger)
}

// ProvideUsageLimiter creates the daily AI quota limiter.
func ProvideUsageLimiter(usage ports.UsageRepository, cfg *config.Config, logger *zap.Logger) *services.UsageLimiter {
	return services.NewUsageLimiter(usage, cfg.DailyAILimit, logger)
}

// ProvideOrchestrator creates the word lifecycle orchestrator.
func ProvideOrchestrator(
	records ports.WordRecordRepository,
	profiles ports.ProfileRepository,
	recency *services.RecencyTracker,
	selector *services.WordSelector,
	generator *services.AIWordGenerator,
	sentences ports.SentenceGenerator,
	usage *services.UsageLimiter,
	bus ports.EventBus,
	metrics ports.MetricsEmitter,
	cfg *config.Config,
	logger *zap.Logger,
) *services.Orchestrator {
	return services.NewOrchestrator(
		records, profiles, recency, selector, generator, sentences,
		usage, bus, metrics, cfg.UseAIGeneration, logger,
	)
}

// ProvideFeedbackProcessor creates the feedback processor.
func ProvideFeedbackProcessor(
	feedback ports.FeedbackRepository,
	profiles ports.ProfileRepository,
	records ports.WordRecordRepository,
	bus ports.EventBus,
	logger *zap.Logger,
) *services.FeedbackProcessor {
	return services.NewFeedbackProcessor(feedback, profiles, records, bus, logger)
}

// ProvideHistoryService creates the history query service.
func ProvideHistoryService(records ports.WordRecordRepository, logger *zap.Logger) *services.HistoryService {
	return services.NewHistoryService(records, logger)
}

// ProvideNotifier creates the notification dispatcher.
func ProvideNotifier(
	profiles ports.ProfileRepository,
	records ports.WordRecordRepository,
	logs ports.NotificationLogRepository,
	push ports.PushSender,
	email ports.EmailSender,
	sms ports.SMSSender,
	metrics ports.MetricsEmitter,
	logger *zap.Logger,
) *services.Notifier {
	return services.NewNotifier(profiles, records, logs, push, email, sms, metrics, logger)
}

// ProvideBatchGenerator creates the daily batch runner.
func ProvideBatchGenerator(profiles ports.ProfileRepository, orchestrator *services.Orchestrator, logger *zap.Logger) *services.BatchGenerator {
	return services.NewBatchGenerator(profiles, orchestrator, logger)
}

// ProvideEnricher creates the content enrichment pipeline.
func ProvideEnricher(
	bank ports.WordBankRepository,
	dictionary ports.DictionaryProvider,
	audio ports.AudioProvider,
	images ports.ImageProvider,
	store ports.MediaStore,
	logger *zap.Logger,
) *services.Enricher {
	return services.NewEnricher(bank, dictionary, audio, images, store, logger)
}

// ProvideJWTValidator creates the token validator.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
	})
}

// LoadSecrets fills credential gaps from Secrets Manager before the
// providers that need them are constructed.
func LoadSecrets(ctx context.Context, client *awssecrets.Client, cfg *config.Config, logger *zap.Logger) error {
	return secrets.Apply(ctx, client, cfg, logger)
}
