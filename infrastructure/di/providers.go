package di

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"journeybuilder/application/ports"
	"journeybuilder/application/seed"
	"journeybuilder/application/stores"
	"journeybuilder/application/templates"
	domainconfig "journeybuilder/domain/config"
	"journeybuilder/infrastructure/config"
	"journeybuilder/infrastructure/messaging"
	"journeybuilder/infrastructure/messaging/eventbridge"
	logpublisher "journeybuilder/infrastructure/messaging/logging"
	"journeybuilder/infrastructure/observability"
	"journeybuilder/infrastructure/persistence/badger"
	"journeybuilder/infrastructure/persistence/dynamodb"
	"journeybuilder/infrastructure/persistence/memory"
	"journeybuilder/interfaces/http/rest"
	"journeybuilder/pkg/auth"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	logger, err := observability.NewLogger(observability.LoggerOptions{
		Production: cfg.IsProduction(),
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
	})
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

// ProvideDomainConfig picks the editing rules for the environment
func ProvideDomainConfig(cfg *config.Config) (*domainconfig.DomainConfig, error) {
	domain := domainconfig.LoadDomainConfig(cfg.Environment)
	if err := domain.Validate(); err != nil {
		return nil, fmt.Errorf("invalid domain config: %w", err)
	}
	return domain, nil
}

// ProvideMetrics creates the Prometheus metrics
func ProvideMetrics() *observability.Metrics {
	return observability.NewMetrics()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideStateStorage opens the configured snapshot backend
func ProvideStateStorage(cfg *config.Config, client *awsdynamodb.Client, logger *zap.Logger) (ports.StateStorage, func(), error) {
	switch cfg.StorageBackend {
	case config.StorageBadger:
		store, err := badger.Open(badger.DefaultConfig(filepath.Join(cfg.StoragePath, "badger")), logger)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if err := store.Close(); err != nil {
				logger.Warn("Failed to close badger storage", zap.Error(err))
			}
		}
		return store, cleanup, nil

	case config.StorageDynamoDB:
		return dynamodb.NewSlotStorage(client, cfg.DynamoDBTable, logger), func() {}, nil

	default:
		return memory.NewStorage(), func() {}, nil
	}
}

// ProvideEventPublisher always logs events and also sends them to
// EventBridge when events are enabled.
func ProvideEventPublisher(cfg *config.Config, client *awseventbridge.Client, logger *zap.Logger) ports.EventPublisher {
	publishers := []ports.EventPublisher{logpublisher.NewPublisher(logger)}
	if cfg.EnableEvents {
		publishers = append(publishers, eventbridge.NewPublisher(client, cfg.EventBusName, logger))
	}
	return messaging.NewFanout(publishers...)
}

// ProvidePersister creates the snapshot writer shared by all stores
func ProvidePersister(cfg *config.Config, storage ports.StateStorage, metrics *observability.Metrics, logger *zap.Logger) *stores.Persister {
	var sm ports.SnapshotMetrics
	if cfg.EnableMetrics {
		sm = metrics
	}
	return stores.NewPersister(storage, sm, logger, cfg.PersistTimeout)
}

// ProvideStoreDependencies bundles the collaborators shared by the stores
func ProvideStoreDependencies(persister *stores.Persister, publisher ports.EventPublisher, logger *zap.Logger) stores.Dependencies {
	return stores.Dependencies{
		Persister: persister,
		Publisher: publisher,
		Logger:    logger,
		Clock:     time.Now,
	}
}

// ProvideJourneyStore creates the journey store and restores its catalog,
// falling back to the seed file when nothing has been persisted.
func ProvideJourneyStore(ctx context.Context, cfg *config.Config, domain *domainconfig.DomainConfig, deps stores.Dependencies) (*stores.JourneyStore, error) {
	journeys, err := seed.LoadFile(cfg.SeedFile, time.Now())
	if err != nil {
		return nil, err
	}
	store := stores.NewJourneyStore(domain, deps)
	if err := store.Restore(ctx, journeys); err != nil {
		return nil, fmt.Errorf("restore journeys: %w", err)
	}
	return store, nil
}

// ProvideSegmentStore creates the segment store and restores its catalog
func ProvideSegmentStore(ctx context.Context, deps stores.Dependencies) (*stores.SegmentStore, error) {
	store := stores.NewSegmentStore(deps)
	if err := store.Restore(ctx); err != nil {
		return nil, fmt.Errorf("restore segments: %w", err)
	}
	return store, nil
}

// ProvideUIStore creates the UI store and restores saved preferences
func ProvideUIStore(ctx context.Context, deps stores.Dependencies) (*stores.UIStore, error) {
	store := stores.NewUIStore(deps)
	if err := store.Restore(ctx); err != nil {
		return nil, fmt.Errorf("restore ui preferences: %w", err)
	}
	return store, nil
}

// ProvideCatalog returns the built-in node palette
func ProvideCatalog() *templates.Catalog {
	return templates.NewCatalog()
}

// ProvideJWTValidator returns nil when no secret is configured, which leaves
// the API unauthenticated.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	if cfg.JWTSecret == "" {
		return nil, nil
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SigningMethod: "HS256",
		SecretKey:     cfg.JWTSecret,
		Issuer:        cfg.JWTIssuer,
	})
}

// ProvideRateLimiter returns nil when rate limiting is disabled
func ProvideRateLimiter(cfg *config.Config) *auth.IPRateLimiter {
	if cfg.RateLimitPerMinute <= 0 {
		return nil
	}
	return auth.NewIPRateLimiter(cfg.RateLimitPerMinute)
}

// ProvideRouter builds the HTTP handler
func ProvideRouter(
	cfg *config.Config,
	logger *zap.Logger,
	domain *domainconfig.DomainConfig,
	journeys *stores.JourneyStore,
	segments *stores.SegmentStore,
	ui *stores.UIStore,
	catalog *templates.Catalog,
	validator *auth.JWTValidator,
	limiter *auth.IPRateLimiter,
	metrics *observability.Metrics,
) http.Handler {
	deps := rest.Dependencies{
		Journeys:  journeys,
		Segments:  segments,
		UI:        ui,
		Catalog:   catalog,
		Domain:    domain,
		Validator: validator,
		Limiter:   limiter,
		Debug:     cfg.IsDevelopment(),
		Logger:    logger,
	}
	if cfg.EnableMetrics {
		deps.Metrics = metrics
		deps.Registry = metrics.Registry()
	}
	if cfg.EnableCORS {
		deps.AllowedOrigins = cfg.AllowedOrigins
	}
	return rest.NewRouter(deps).Setup()
}
