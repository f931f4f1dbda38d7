package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"journeybuilder/application/stores"
	"journeybuilder/application/templates"
	"journeybuilder/domain/config"
	"journeybuilder/interfaces/http/rest/handlers"
	"journeybuilder/interfaces/http/rest/middleware"
	"journeybuilder/pkg/auth"
	pkgerrors "journeybuilder/pkg/errors"
)

// Version is reported by /health
const Version = "1.0.0"

// Dependencies are what the router wires into handlers. Validator, Limiter,
// Metrics and Registry are optional.
type Dependencies struct {
	Journeys       *stores.JourneyStore
	Segments       *stores.SegmentStore
	UI             *stores.UIStore
	Catalog        *templates.Catalog
	Domain         *config.DomainConfig
	Validator      *auth.JWTValidator
	Limiter        *auth.IPRateLimiter
	Metrics        middleware.RequestObserver
	Registry       *prometheus.Registry
	AllowedOrigins []string
	Debug          bool
	Logger         *zap.Logger
}

// Router creates and configures the HTTP router
type Router struct {
	deps   Dependencies
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(deps Dependencies) *Router {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if deps.Domain == nil {
		deps.Domain = config.DefaultDomainConfig()
	}
	return &Router{
		deps:   deps,
		errors: pkgerrors.NewErrorHandler(logger, deps.Debug),
		logger: logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(rt.errors.Middleware)
	router.Use(middleware.Logger(rt.logger, rt.deps.Metrics))

	if len(rt.deps.AllowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   rt.deps.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	router.Get("/health", handlers.NewHealthHandler(Version).Health)
	if rt.deps.Registry != nil {
		router.Handle("/metrics", promhttp.HandlerFor(rt.deps.Registry, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		if rt.deps.Limiter != nil {
			r.Use(middleware.RateLimit(rt.deps.Limiter, rt.errors, rt.logger))
		}
		if rt.deps.Validator != nil {
			r.Use(middleware.Authenticate(rt.deps.Validator, rt.errors, rt.logger))
		}

		journeys := handlers.NewJourneyHandler(rt.deps.Journeys, rt.deps.Domain, rt.errors, rt.logger)
		r.Route("/journeys", func(r chi.Router) {
			r.Get("/", journeys.ListJourneys)
			r.Post("/", journeys.CreateJourney)
			r.Route("/{journeyID}", func(r chi.Router) {
				r.Get("/", journeys.GetJourney)
				r.Patch("/", journeys.UpdateJourney)
				r.Delete("/", journeys.DeleteJourney)
				r.Post("/open", journeys.OpenJourney)
				r.Post("/publish", journeys.PublishJourney)
				r.Post("/pause", journeys.PauseJourney)
				r.Post("/archive", journeys.ArchiveJourney)
			})
		})

		editor := handlers.NewEditorHandler(rt.deps.Journeys, rt.deps.Catalog, rt.deps.Domain, rt.errors, rt.logger)
		r.Route("/editor", func(r chi.Router) {
			r.Get("/", editor.GetEditor)
			r.Post("/save", editor.SaveEditor)
			r.Post("/connect", editor.Connect)
			r.Post("/node-changes", editor.ApplyNodeChanges)
			r.Post("/edge-changes", editor.ApplyEdgeChanges)
			r.Post("/nodes", editor.AddNode)
			r.Route("/nodes/{nodeID}", func(r chi.Router) {
				r.Patch("/", editor.UpdateNode)
				r.Delete("/", editor.DeleteNode)
				r.Post("/duplicate", editor.DuplicateNode)
				r.Post("/select", editor.SelectNode)
			})
		})

		segments := handlers.NewSegmentHandler(rt.deps.Segments, rt.deps.Domain, rt.errors, rt.logger)
		r.Route("/segments", func(r chi.Router) {
			r.Get("/", segments.ListSegments)
			r.Post("/", segments.CreateSegment)
			r.Route("/current", func(r chi.Router) {
				r.Get("/", segments.GetCurrentSegment)
				r.Post("/save", segments.SaveCurrentSegment)
				r.Route("/groups/{groupID}", func(r chi.Router) {
					r.Post("/conditions", segments.AddCondition)
					r.Patch("/conditions/{conditionID}", segments.UpdateCondition)
					r.Delete("/conditions/{conditionID}", segments.RemoveCondition)
					r.Post("/groups", segments.AddConditionGroup)
					r.Post("/toggle", segments.ToggleGroupOperator)
				})
			})
			r.Route("/{segmentID}", func(r chi.Router) {
				r.Patch("/", segments.UpdateSegment)
				r.Delete("/", segments.DeleteSegment)
				r.Post("/open", segments.OpenSegment)
			})
		})

		r.Get("/templates", handlers.NewTemplateHandler(rt.deps.Catalog, rt.errors, rt.logger).ListTemplates)

		ui := handlers.NewUIHandler(rt.deps.UI, rt.errors, rt.logger)
		r.Get("/ui", ui.GetUI)
		r.Put("/ui", ui.UpdateUI)
		r.Post("/ui/theme/toggle", ui.ToggleTheme)
	})

	return router
}
