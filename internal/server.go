package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/bstanar/gymtree/internal/analytics"
	"github.com/bstanar/gymtree/internal/cascade"
	"github.com/bstanar/gymtree/internal/config"
	"github.com/bstanar/gymtree/internal/db"
	"github.com/bstanar/gymtree/internal/middleware"
	"github.com/bstanar/gymtree/internal/telemetry/metrics"
	"github.com/bstanar/gymtree/internal/telemetry/tracing"
	"github.com/bstanar/gymtree/internal/training/store"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

const analyticsCacheSizeBytes = 10 * 1024 * 1024

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	trainingRepo     *store.Repo
	cascadeHandler   *cascade.Handler
	analyticsService *analytics.Service

	redisClient *redis.Client

	// telemetry
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
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
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("gymtree", "main", promRegistry)
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
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "gymtree-backend")
	if err != nil {
		return nil, err
	}

	trainingRepo := store.NewRepo(dbPool)

	analyticsService := analytics.NewService(analytics.NewServiceParams{
		Store:   trainingRepo,
		Cache:   analytics.NewCache(analyticsCacheSizeBytes, time.Now),
		Metrics: metricsManager,
	})

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		trainingRepo: trainingRepo,
		cascadeHandler: cascade.NewHandler(
			cascade.NewEngine(trainingRepo),
			cascade.NewExecutor(trainingRepo, metricsManager),
		),
		analyticsService: analyticsService,

		redisClient: rdb,

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("gymtree-router"))

	r.HandleFunc("/cascade/counts", s.cascadeHandler.HandleGetCounts).Methods("GET", "OPTIONS").Name("cascade-counts")

	// destructive routes get their own subrouter with a rate limit
	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	deleteRouter := r.NewRoute().Subrouter()
	deleteRouter.Use(middleware.RateLimit(
		reqRateLimiter,
		"cascade-delete",
		s.config.CascadeDeleteRateLimitPerMin,
		s.metricsManager,
	))
	deleteRouter.HandleFunc("/week/{id}", s.cascadeHandler.HandleDeleteWeek).Methods("DELETE", "OPTIONS").Name("delete-week")
	deleteRouter.HandleFunc("/workout/{id}", s.cascadeHandler.HandleDeleteWorkout).Methods("DELETE", "OPTIONS").Name("delete-workout")
	deleteRouter.HandleFunc("/exercise/{id}", s.cascadeHandler.HandleDeleteExercise).Methods("DELETE", "OPTIONS").Name("delete-exercise")
	deleteRouter.HandleFunc("/program/{id}/archive", s.cascadeHandler.HandleArchiveProgram).Methods("POST", "OPTIONS").Name("archive-program")

	analyticsHandler := analytics.NewHandler(s.analyticsService)
	r.HandleFunc("/analytics", analyticsHandler.HandleGetAnalytics).Methods("GET", "OPTIONS").Name("analytics")
	r.HandleFunc("/analytics/heatmap/{year}", analyticsHandler.HandleYearHeatmap).Methods("GET", "OPTIONS").Name("year-heatmap")
	r.HandleFunc("/analytics/heatmap/{year}/{month}", analyticsHandler.HandleMonthHeatmap).Methods("GET", "OPTIONS").Name("month-heatmap")
	r.HandleFunc("/analytics/records/{exerciseId}", analyticsHandler.HandleExerciseRecords).Methods("GET", "OPTIONS").Name("exercise-records")
	r.HandleFunc("/analytics/cache/clear", analyticsHandler.HandleClearCache).Methods("POST", "OPTIONS").Name("clear-analytics-cache")

	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte(s.versionInfo)); err != nil {
			log.Errorf("failed to write version response: %s", err)
		}
	}).Methods("GET").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
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

	log.Debugln("waiting for analytics prefetches ...")
	s.analyticsService.Wait()

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

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
