package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"deal-underwriter/config"
	httpLayer "deal-underwriter/http"
	"deal-underwriter/logger"
	"deal-underwriter/repository"
	"deal-underwriter/scheduler"
	"deal-underwriter/service"
)

func main() {
	importCSV := flag.String("import-csv", "", "replace the SQLite listings table with this CSV file, then exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	if *importCSV != "" {
		if err := importListings(cfg, *importCSV, log); err != nil {
			log.Fatal().Err(err).Msg("Listing import failed")
		}
		return
	}

	assumptions, err := config.LoadAssumptions(cfg.AssumptionsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load assumptions")
	}

	source, err := openListingSource(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open listing source")
	}

	listingService := service.NewListingService(source, assumptions, log)
	defer listingService.Close()

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	err = listingService.Refresh(loadCtx)
	cancelLoad()
	if err != nil {
		listingService.Close()
		log.Fatal().Err(err).Str("path", cfg.ListingsPath).Msg("Failed to load listings")
	}

	cache := openCache(cfg, log)
	defer cache.Close()

	commentary := service.NewCommentaryService(service.CommentaryConfig{
		APIKey: cfg.OpenAIAPIKey,
		APIURL: cfg.OpenAIAPIURL,
		Model:  cfg.OpenAIModel,
	}, log)
	if !commentary.Enabled() {
		log.Info().Msg("OPENAI_API_KEY not set, deal commentary uses the built-in template")
	}

	underwritingService := service.NewUnderwritingService(commentary, log)
	projectionService := service.NewProjectionService(log)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	sched := scheduler.New(log)
	if cfg.ListingsRefreshSchedule != "" {
		job := service.NewListingRefreshJob(listingService, 30*time.Second)
		if err := sched.AddJob(cfg.ListingsRefreshSchedule, job); err != nil {
			// log.Fatal exits without running deferred closes
			cache.Close()
			listingService.Close()
			log.Fatal().Err(err).Str("schedule", cfg.ListingsRefreshSchedule).Msg("Invalid listing refresh schedule")
		}
	}
	sched.Start()
	defer sched.Stop()

	server := httpLayer.NewServer(httpLayer.Config{
		Log:          log,
		Port:         cfg.Port,
		Underwriting: underwritingService,
		Projections:  projectionService,
		Listings:     listingService,
		Cache:        cache,
		CacheTTL:     cfg.CacheTTL,
		RateLimiter:  rateLimiter,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error().Err(err).Msg("HTTP server failed")
		return
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server exited")
}

func openListingSource(cfg *config.Config) (repository.ListingSource, error) {
	if cfg.ListingsInSQLite() {
		return repository.NewSQLiteListingSource(cfg.ListingsPath)
	}
	return repository.NewCSVListingSource(cfg.ListingsPath), nil
}

// openCache prefers Redis and falls back to the in-memory cache when Redis is
// not configured or not reachable.
func openCache(cfg *config.Config, log zerolog.Logger) repository.CacheRepository {
	if cfg.RedisAddr == "" {
		return repository.NewMemoryCache()
	}

	redisCache := repository.NewRedisCache(cfg.RedisAddr, "deal-underwriter:")
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := redisCache.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unreachable, using in-memory cache")
		redisCache.Close()
		return repository.NewMemoryCache()
	}

	log.Info().Str("addr", cfg.RedisAddr).Msg("Using Redis response cache")
	return redisCache
}

func importListings(cfg *config.Config, csvPath string, log zerolog.Logger) error {
	if !cfg.ListingsInSQLite() {
		log.Error().Str("path", cfg.ListingsPath).Msg("LISTINGS_PATH must point at a SQLite database to import into")
		return os.ErrInvalid
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	listings, err := repository.NewCSVListingSource(csvPath).LoadListings(ctx)
	if err != nil {
		return err
	}

	db, err := repository.NewSQLiteListingSource(cfg.ListingsPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.ReplaceListings(ctx, listings); err != nil {
		return err
	}

	log.Info().Int("count", len(listings)).Str("from", csvPath).Str("into", cfg.ListingsPath).Msg("Listings imported")
	return nil
}
