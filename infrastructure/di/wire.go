//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"journeybuilder/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideMetrics,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideStateStorage,
	ProvideEventPublisher,
	ProvidePersister,
	ProvideStoreDependencies,
	ProvideJourneyStore,
	ProvideSegmentStore,
	ProvideUIStore,
	ProvideCatalog,
	ProvideJWTValidator,
	ProvideRateLimiter,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, func(), error) {
	wire.Build(SuperSet)
	return nil, nil, nil // Wire will replace this
}
