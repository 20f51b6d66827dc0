package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/fitcalc/internal/auth"
	"github.com/2beens/fitcalc/internal/calculators"
	"github.com/2beens/fitcalc/internal/config"
	"github.com/2beens/fitcalc/internal/db"
	fitcalcmcp "github.com/2beens/fitcalc/internal/mcp"
	"github.com/2beens/fitcalc/internal/middleware"
	"github.com/2beens/fitcalc/internal/misc"
	"github.com/2beens/fitcalc/internal/settings"
	"github.com/2beens/fitcalc/internal/share"
	"github.com/2beens/fitcalc/internal/telemetry/metrics"
	metricsmiddleware "github.com/2beens/fitcalc/internal/telemetry/metrics/middleware"
	"github.com/2beens/fitcalc/internal/telemetry/tracing"
	"github.com/2beens/fitcalc/internal/timer"
	"github.com/2beens/fitcalc/internal/units"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config        *config.Config
	dbPool        *pgxpool.Pool
	redisClient   *redis.Client
	sessions      *auth.Sessions
	registry      *calculators.Registry
	unitsResolver *units.Resolver

	// metrics endpoint basic auth
	metricsUsername     string
	metricsPasswordHash string

	// telemetry
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	IpInfoToken             string
	RedisPassword           string
	PostgresPassword        string
	MetricsUsername         string
	MetricsPasswordHash     string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.Config.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	promRegistry := metrics.SetupPrometheus(db.NewPoolCollector(dbPool, params.Config.PostgresDBName))
	metricsManager := metrics.NewManager("fitcalc", "backend", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitcalc-backend", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   5 * time.Second,
	}

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		redisClient: rdb,
		sessions:    auth.NewSessions(auth.DefaultTTL, rdb),
		registry:    calculators.NewDefaultRegistry(),
		unitsResolver: units.NewResolver(
			units.NewIpInfoClient(params.IpInfoToken, tracedHttpClient),
			rdb,
			params.Config.IpInfoCacheTTL(),
		),

		metricsUsername:     params.MetricsUsername,
		metricsPasswordHash: params.MetricsPasswordHash,

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("fitcalc-router"))

	misc.NewHandler(s.versionInfo).SetupRoutes(r)

	calculators.NewHandler(s.registry, s.metricsManager, s.config.BaseURL).SetupRoutes(r)
	units.NewHandler(s.unitsResolver).SetupRoutes(r)

	shareRouter := r.PathPrefix("/share").Subrouter()
	shareService := share.NewService(
		s.registry,
		share.NewStore(s.redisClient, s.config.ShareTTL(), s.config.ShareCacheSizeMB),
		s.config.BaseURL,
	)
	share.NewHandler(shareService, s.metricsManager).SetupRoutes(shareRouter)
	shareRouter.Use(middleware.RateLimit(
		redis_rate.NewLimiter(s.redisClient),
		"share",
		s.config.RateLimitPerMin,
		s.metricsManager,
	))

	timerRouter := r.PathPrefix("/timer").Subrouter()
	timer.NewHandler(
		s.config.TimerFrameInterval(),
		s.config.MaxTimerSessions,
		s.config.AllowedOrigins,
		s.metricsManager,
	).SetupRoutes(timerRouter)

	userRouter := r.PathPrefix("/api/user").Subrouter()
	settingsService := settings.NewService(settings.NewRepo(s.dbPool), s.registry, s.sessions)
	settings.NewHandler(settingsService).SetupRoutes(userRouter)

	mcpHandler := fitcalcmcp.NewHTTPHandler(fitcalcmcp.NewServer(s.registry, s.versionInfo))
	r.Handle("/mcp", mcpHandler).Methods("GET", "POST", "DELETE", "OPTIONS").Name("mcp")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.sessions)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) metricsHandler() http.Handler {
	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", metricsmiddleware.BasicAuth(
		s.metricsUsername,
		s.metricsPasswordHash,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	return metricsRouter
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           s.metricsHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed, http.StateHijacked:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
