//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"wordaday-backend/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set.
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideCloudWatchClient,
	ProvideBedrockClient,
	ProvideS3Client,
	ProvideSESClient,
	ProvideSNSClient,
	ProvideWordRecordRepository,
	ProvideWordBankRepository,
	ProvideProfileRepository,
	ProvideFeedbackRepository,
	ProvideUsageRepository,
	ProvideNotificationLogRepository,
	ProvideEventBus,
	ProvideMetricsEmitter,
	ProvideWordProviders,
	ProvideSentenceGenerator,
	ProvideImageProvider,
	ProvideDictionaryProvider,
	ProvideAudioProvider,
	ProvideMediaStore,
	ProvidePushSender,
	ProvideEmailSender,
	ProvideSMSSender,
	ProvideRecencyTracker,
	ProvideWordSelector,
	ProvideAIWordGenerator,
	ProvideUsageLimiter,
	ProvideOrchestrator,
	ProvideFeedbackProcessor,
	ProvideHistoryService,
	ProvideNotifier,
	ProvideBatchGenerator,
	ProvideEnricher,
	ProvideJWTValidator,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container.
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
