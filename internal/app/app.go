package app

import (
	"context"
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"evrental/internal/backend"
	"evrental/internal/booking"
	"evrental/internal/catalog"
	"evrental/internal/config"
	"evrental/internal/hints"
	httpserver "evrental/internal/http"
	"evrental/internal/http/handlers"
	"evrental/internal/http/middleware"
	"evrental/internal/rating"
	redisclient "evrental/internal/redis"
	"evrental/internal/session"
	"evrental/internal/ws"
)

// App wires gateway dependencies.
type App struct {
	server      *httpserver.Server
	sessions    *session.Store
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password)
	if err != nil {
		return nil, err
	}

	httpClient := backend.NewDefaultHTTPClient(cfg.BackendTimeout())
	authClient := backend.NewAuthClient(cfg.Backend.BaseURL, httpClient)
	profileClient := backend.NewProfileClient(cfg.Backend.BaseURL, httpClient)
	stationsClient := backend.NewStationsClient(cfg.Backend.BaseURL, httpClient)
	vehiclesClient := backend.NewVehiclesClient(cfg.Backend.BaseURL, httpClient)
	bookingsClient := backend.NewBookingsClient(cfg.Backend.BaseURL, httpClient)
	adminClient := backend.NewAdminClient(cfg.Backend.BaseURL, httpClient)

	sessionStorage := session.NewRedisStorage(redisClient, logger)
	sessions := session.NewStore(sessionStorage, logger, cfg.SessionTTL())

	notifier := ws.NewNotifier(logger)
	sessions.OnInvalidate(func(ev session.Event) {
		notifier.SessionInvalidated(ev.SessionID, ev.Reason)
	})

	aggregator := rating.NewAggregator(stationsClient, logger, 0)
	catalogCache := catalog.NewCache(redisClient, logger, cfg.CatalogCacheTTL())
	filter := catalog.NewFilter(cfg.Catalog.Locale)
	validator := booking.NewValidator(cfg.Booking.MinRentalHours)
	hintStore := hints.NewStore(redisClient)

	deps := httpserver.RouterDeps{
		Auth:          handlers.NewAuthHandlers(authClient, sessions, logger),
		Stations:      handlers.NewStationsHandlers(stationsClient, aggregator, hintStore, sessions, logger),
		Catalog:       handlers.NewCatalogHandlers(vehiclesClient, catalogCache, filter, logger),
		Bookings:      handlers.NewBookingsHandlers(bookingsClient, vehiclesClient, catalogCache, validator, hintStore, sessions, logger),
		Profile:       handlers.NewProfileHandlers(profileClient, hintStore, sessions, logger),
		Admin:         handlers.NewAdminHandlers(adminClient, sessions, logger),
		SessionEvents: handlers.NewSessionEventsHandler(sessions, notifier, logger),
		HealthHandler: handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(deps, middleware.Auth(sessions))

	var handler http.Handler = router
	handler = corsMiddleware(cfg)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	server := httpserver.NewServer(cfg.HTTPAddress(), handler, logger)

	return &App{
		server:      server,
		sessions:    sessions,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

func corsMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	origins := cfg.CORS.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(origins),
		gorillahandlers.AllowedMethods([]string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		}),
		gorillahandlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		gorillahandlers.AllowCredentials(),
	)
}

// Run starts the HTTP server and the session invalidation watcher. Both stop
// when ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.server.Run(gctx)
	})
	g.Go(func() error {
		if err := a.sessions.Watch(gctx); err != nil && gctx.Err() == nil {
			return err
		}
		return nil
	})
	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// Close releases resources.
func (a *App) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
