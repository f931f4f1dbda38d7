package di

import (
	"net/http"

	"go.uber.org/zap"

	"journeybuilder/application/ports"
	"journeybuilder/application/stores"
	"journeybuilder/application/templates"
	domainconfig "journeybuilder/domain/config"
	"journeybuilder/infrastructure/config"
	"journeybuilder/infrastructure/observability"
)

// Container holds all application dependencies
type Container struct {
	Config    *config.Config
	Domain    *domainconfig.DomainConfig
	Logger    *zap.Logger
	Metrics   *observability.Metrics
	Storage   ports.StateStorage
	Publisher ports.EventPublisher
	Journeys  *stores.JourneyStore
	Segments  *stores.SegmentStore
	UI        *stores.UIStore
	Catalog   *templates.Catalog
	Handler   http.Handler
}
