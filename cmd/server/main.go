package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"regwise/internal/ai"
	"regwise/internal/alert"
	"regwise/internal/appstate"
	"regwise/internal/audit"
	"regwise/internal/auth"
	"regwise/internal/country"
	"regwise/internal/dashboard"
	"regwise/internal/item"
	"regwise/internal/jwttoken"
	"regwise/internal/platform/config"
	"regwise/internal/platform/httpserver"
	"regwise/internal/platform/logger"
	"regwise/internal/platform/metrics"
	"regwise/internal/platform/middleware"
	"regwise/internal/platform/postgres"
	platformredis "regwise/internal/platform/redis"
	"regwise/internal/search"
	"regwise/internal/seed"
	httptransport "regwise/internal/transport/http"
	"regwise/internal/upload"
)

const auditBuffer = 256

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal feature packages.
func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	var (
		countryStore country.Store
		alertStore   alert.Store
		userStore    auth.Store
		itemStore    item.Store
		auditStore   audit.Store
	)
	if cfg.PostgresURL != "" {
		pool, err := postgres.Connect(ctx, cfg.PostgresURL)
		if err != nil {
			log.Error("postgres connect failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Error("postgres migrate failed", "error", err)
			os.Exit(1)
		}
		countryStore = country.NewPostgresStore(pool)
		alertStore = alert.NewPostgresStore(pool)
		userStore = auth.NewPostgresStore(pool)
		itemStore = item.NewPostgresStore(pool)
		auditStore = audit.NewPostgresStore(pool)
		log.Info("using postgres stores")
	} else {
		countryStore = country.NewMemoryStore()
		alertStore = alert.NewMemoryStore()
		userStore = auth.NewMemoryStore()
		itemStore = item.NewMemoryStore()
		auditStore = audit.NewMemoryStore()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Warn("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		countryStore = country.NewCachedStore(countryStore, redisClient, cfg.CacheTTL, log)
	}

	if cfg.DemoMode {
		if err := seedDemoData(ctx, countryStore, alertStore, log); err != nil {
			log.Warn("demo seeding failed", "error", err)
		}
	}

	recorder := audit.NewRecorder(auditBuffer, log, m)
	worker := audit.NewWorker(auditStore, recorder.Inbox(), log)

	tokens := jwttoken.NewService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.TokenTTL)
	requireAuth := middleware.RequireAuth(tokens, log)

	countrySvc := country.NewService(countryStore, log, recorder)
	alertSvc := alert.NewService(alertStore, log, recorder)
	authSvc := auth.NewService(userStore, tokens, log, recorder)
	itemSvc := item.NewService(itemStore, log, recorder)
	searchSvc := search.NewService(countrySvc, recorder)
	dashSvc := dashboard.NewService(countryStore, alertStore, auditStore, log)
	aiClient := ai.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel)
	state := appstate.New()

	var cacheHealth func(ctx context.Context) error
	if redisClient != nil {
		cacheHealth = redisClient.Health
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:         log,
		Metrics:        m,
		AllowedOrigins: cfg.AllowedOrigins,
		CacheHealth:    cacheHealth,
		Handlers: []httptransport.Registrar{
			country.New(countrySvc, log, requireAuth),
			alert.New(alertSvc, log, requireAuth),
			auth.New(authSvc, log, requireAuth),
			item.New(itemSvc, log, requireAuth),
			search.New(searchSvc, log, state),
			dashboard.New(dashSvc, log, redisClient, cfg.CacheTTL),
			upload.New(cfg.UploadDir, cfg.UploadMaxBytes, log, recorder),
			ai.New(aiClient, log),
		},
	})

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return worker.Run(ctx)
	})
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// seedDemoData loads the bundled directory file so the service serves data
// without any external database. Missing file falls back to alerts only.
func seedDemoData(ctx context.Context, countries country.Store, alerts alert.Store, log *slog.Logger) error {
	var data []country.Country
	f, err := os.Open("data/countries.json")
	if err == nil {
		defer f.Close()
		data, err = seed.ParseCountries(f)
		if err != nil {
			return err
		}
	} else {
		log.Warn("countries.json not found, seeding alerts only", "error", err)
	}
	return seed.Apply(ctx, countries, alerts, data, log)
}
