package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"signalscout/internal/adapter/openai"
	"signalscout/internal/adapter/storage"
	"signalscout/internal/config"
	"signalscout/internal/domain/trend"
	"signalscout/internal/server"
	"signalscout/internal/service/analysis"
	"signalscout/internal/service/generation"
	"signalscout/internal/service/ingest"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := setupLogger(cfg.Environment)

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize dependencies
	db, err := initDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := storage.InitSchema(ctx, db); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	natsConn, err := initNATS(cfg.NATS, log)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer natsConn.Close()

	// Initialize storage adapters
	trendStore := storage.NewTrendStore(db)
	patternStore := storage.NewPatternStore(db)
	contentStore := storage.NewContentStore(db)
	voiceStore := storage.NewVoiceStore(db)

	// Initialize platform fetchers. Unconfigured platforms stay nil and
	// their ingestion endpoints report an error.
	redditFetcher := ingest.NewRedditFetcher("", cfg.Reddit.UserAgent, cfg.Reddit.Timeout)

	var youtubeFetcher *ingest.YouTubeFetcher
	if cfg.YouTube.APIKey != "" {
		youtubeFetcher = ingest.NewYouTubeFetcher("", cfg.YouTube.APIKey, cfg.YouTube.Timeout)
	}

	var twitterFetcher *ingest.TwitterFetcher
	if cfg.Twitter.BearerToken != "" {
		twitterFetcher = ingest.NewTwitterFetcher(cfg.Twitter.BearerToken, cfg.Twitter.Timeout)
	}

	// Initialize services
	ingestService := ingest.NewService(trendStore, natsConn, redditFetcher, youtubeFetcher, twitterFetcher, log)
	queryService := analysis.NewQueryService(trendStore)
	reporter := analysis.NewReporter(trendStore, cfg.Analysis.ReportWindowDays, cfg.Analysis.ViralThreshold)
	analyzer := analysis.NewPatternAnalyzer(trendStore, patternStore, cfg.Analysis.ViralThreshold, log)

	var generator *generation.Generator
	var voiceTrainer *generation.VoiceTrainer
	if cfg.OpenAI.APIKey != "" {
		llm, err := openai.NewClient(openai.Config{
			APIKey:      cfg.OpenAI.APIKey,
			Model:       cfg.OpenAI.Model,
			Temperature: cfg.OpenAI.Temperature,
			MaxTokens:   cfg.OpenAI.MaxTokens,
			Timeout:     cfg.OpenAI.Timeout,
		})
		if err != nil {
			log.Fatalf("Failed to create OpenAI client: %v", err)
		}
		generator = generation.NewGenerator(trendStore, contentStore, voiceStore, llm, log)
		voiceTrainer = generation.NewVoiceTrainer(voiceStore, llm, log)
	} else {
		log.Warn("OPENAI_API_KEY not set; content generation disabled")
	}

	// Start the NATS job dispatcher
	dispatcher := ingest.NewDispatcher(ingestService, natsConn, log)
	if err := dispatcher.Start(ctx); err != nil {
		log.Fatalf("Failed to start ingestion dispatcher: %v", err)
	}
	defer dispatcher.Stop()

	// Start the scheduled ingestion loop
	go ingestService.RunLoop(ctx, cfg.Ingest.Interval, scheduledTargets(cfg))

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, server.Deps{
		TrendStore:   trendStore,
		PatternStore: patternStore,
		Query:        queryService,
		Reporter:     reporter,
		Analyzer:     analyzer,
		Ingest:       ingestService,
		Generator:    generator,
		VoiceTrainer: voiceTrainer,
		EventBus:     natsConn,
		Log:          log,
	})

	// Start HTTP server
	go func() {
		log.Infof("Starting HTTP server on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	log.Info("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("HTTP server shutdown error: %v", err)
	}

	log.Info("Shutdown complete")
}

// setupLogger configures the structured logger for the environment.
func setupLogger(environment string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if environment == "development" {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}

// scheduledTargets builds the recurring ingestion plan from configuration.
func scheduledTargets(cfg config.Config) []ingest.ScheduledTarget {
	var targets []ingest.ScheduledTarget
	for _, subreddit := range cfg.Reddit.Subreddits {
		targets = append(targets, ingest.ScheduledTarget{
			Platform: trend.PlatformReddit,
			Target:   subreddit,
			Limit:    cfg.Ingest.FetchLimit,
		})
	}
	if cfg.YouTube.APIKey != "" {
		targets = append(targets, ingest.ScheduledTarget{
			Platform: trend.PlatformYouTube,
			Target:   cfg.YouTube.RegionCode,
			Limit:    cfg.Ingest.FetchLimit,
		})
	}
	return targets
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Test connection
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig, log *logrus.Logger) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.WithError(err).Warn("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.WithField("url", nc.ConnectedUrl()).Info("NATS reconnected")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}
