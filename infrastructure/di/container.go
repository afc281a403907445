package di

import (
	"context"
	"fmt"

	"wordaday-backend/application/ports"
	"wordaday-backend/application/services"
	"wordaday-backend/infrastructure/config"
	"wordaday-backend/pkg/auth"

	"go.uber.org/zap"
)

// Container holds the wired application.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	WordRecords ports.WordRecordRepository
	WordBank    ports.WordBankRepository
	Profiles    ports.ProfileRepository
	Feedback    ports.FeedbackRepository
	EventBus    ports.EventBus
	Metrics     ports.MetricsEmitter

	Orchestrator      *services.Orchestrator
	FeedbackProcessor *services.FeedbackProcessor
	HistoryService    *services.HistoryService
	Notifier          *services.Notifier
	BatchGenerator    *services.BatchGenerator
	Enricher          *services.Enricher

	JWTValidator *auth.JWTValidator
}

// NewContainer constructs the full dependency graph. Lambda entrypoints
// call this once per cold start.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	awsCfg, err := ProvideAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if err := LoadSecrets(ctx, ProvideSecretsManagerClient(awsCfg), cfg, logger); err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	dynamoClient := ProvideDynamoDBClient(awsCfg)
	records := ProvideWordRecordRepository(dynamoClient, cfg, logger)
	bank := ProvideWordBankRepository(dynamoClient, cfg, logger)
	profiles := ProvideProfileRepository(dynamoClient, cfg, logger)
	feedback := ProvideFeedbackRepository(dynamoClient, cfg, logger)
	usage := ProvideUsageRepository(dynamoClient, cfg, logger)
	notificationLogs := ProvideNotificationLogRepository(dynamoClient, cfg, logger)

	bus := ProvideEventBus(ProvideEventBridgeClient(awsCfg), cfg, logger)
	metrics := ProvideMetricsEmitter(ProvideCloudWatchClient(awsCfg), cfg, logger)

	providers := ProvideWordProviders(cfg, logger)
	sentences := ProvideSentenceGenerator(ProvideBedrockClient(awsCfg), cfg, logger)
	images := ProvideImageProvider(cfg, logger)
	dictionary := ProvideDictionaryProvider(cfg, logger)
	audio := ProvideAudioProvider(cfg, logger)
	mediaStore := ProvideMediaStore(ProvideS3Client(awsCfg), cfg, logger)

	recency := ProvideRecencyTracker(records, logger)
	selector := ProvideWordSelector(bank, logger)
	generator := ProvideAIWordGenerator(providers, images, metrics, logger)
	limiter := ProvideUsageLimiter(usage, cfg, logger)

	orchestrator := ProvideOrchestrator(
		records, profiles, recency, selector, generator, sentences,
		limiter, bus, metrics, cfg, logger,
	)

	notifier := ProvideNotifier(
		profiles, records, notificationLogs,
		ProvidePushSender(logger),
		ProvideEmailSender(ProvideSESClient(awsCfg), cfg, logger),
		ProvideSMSSender(ProvideSNSClient(awsCfg), logger),
		metrics, logger,
	)

	var validator *auth.JWTValidator
	if cfg.JWTSecret != "" {
		validator, err = ProvideJWTValidator(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT validator: %w", err)
		}
	}

	return &Container{
		Config:            cfg,
		Logger:            logger,
		WordRecords:       records,
		WordBank:          bank,
		Profiles:          profiles,
		Feedback:          feedback,
		EventBus:          bus,
		Metrics:           metrics,
		Orchestrator:      orchestrator,
		FeedbackProcessor: ProvideFeedbackProcessor(feedback, profiles, records, bus, logger),
		HistoryService:    ProvideHistoryService(records, logger),
		Notifier:          notifier,
		BatchGenerator:    ProvideBatchGenerator(profiles, orchestrator, logger),
		Enricher:          ProvideEnricher(bank, dictionary, audio, images, mediaStore, logger),
		JWTValidator:      validator,
	}, nil
}

// Close flushes buffered telemetry.
func (c *Container) Close() {
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
