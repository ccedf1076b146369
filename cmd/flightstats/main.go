package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/dasmondroy97/Quantexa/internal/domain/repository"
	"github.com/dasmondroy97/Quantexa/internal/infrastructure/config"
	"github.com/dasmondroy97/Quantexa/internal/infrastructure/oauth"
	"github.com/dasmondroy97/Quantexa/internal/infrastructure/persistence"
	"github.com/dasmondroy97/Quantexa/internal/infrastructure/router"
	"github.com/dasmondroy97/Quantexa/internal/interface/fetcher"
	"github.com/dasmondroy97/Quantexa/internal/interface/report"
	sourceRepo "github.com/dasmondroy97/Quantexa/internal/interface/repository"
	"github.com/dasmondroy97/Quantexa/internal/usecase"
	"github.com/dasmondroy97/Quantexa/pkg/logger"
	"github.com/dasmondroy97/Quantexa/pkg/metrics"
	"github.com/dasmondroy97/Quantexa/pkg/utils"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger().Error("Failed to load config", "error", err)
		return 1
	}

	flags := flag.NewFlagSet("flightstats", flag.ContinueOnError)
	flags.StringVar(&cfg.HubLocation, "hub", cfg.HubLocation, "hub location excluded from runs")
	flags.IntVar(&cfg.CoTravelThreshold, "min-together", cfg.CoTravelThreshold, "minimum shared flights for a co-travel pair")
	flags.IntVar(&cfg.ReportLimit, "limit", cfg.ReportLimit, "rows printed per section, 0 for all")
	flags.StringVar(&cfg.ReportFormat, "format", cfg.ReportFormat, "report format: text or json")
	flags.StringVar(&cfg.FlightsLocation, "flights", cfg.FlightsLocation, "flights CSV location")
	flags.StringVar(&cfg.PassengersLocation, "passengers", cfg.PassengersLocation, "passengers CSV location")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	runID := uuid.NewString()
	log := logger.NewLoggerWithLevel(cfg.LogLevel).With("runId", runID)
	defer func() { _ = log.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Error("Invalid configuration", "error", err)
		return 2
	}
	log.Info("Starting flight analytics", "version", cfg.AppVersion, "source", cfg.DataSource, "hub", cfg.HubLocation)

	// Set up context with cancellation
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	m := metrics.NewMetrics("flightstats")
	// Written on every exit path, failed runs included
	defer writeMetrics(m, cfg.MetricsTextfile, log)

	flightRepo, passengerRepo, closeSource, err := openSource(ctx, cfg, log)
	if err != nil {
		m.ErrorsCount.WithLabelValues("open_source").Inc()
		log.Error("Failed to open data source", "error", err)
		return 1
	}
	defer closeSource()

	service := usecase.NewAnalyticsService(flightRepo, passengerRepo, m, log)
	result, err := service.Run(ctx, usecase.AnalyticsOptions{
		Hub: cfg.HubLocation,
		CoTravel: usecase.CoTravelOptions{
			MinFlights: cfg.CoTravelThreshold,
			From:       cfg.CoTravelFrom,
			To:         cfg.CoTravelTo,
		},
	})
	if err != nil {
		log.Error("Analytics run failed", "error", err)
		return 1
	}
	result.RunID = runID

	reporter := report.NewConsoleReporter(os.Stdout, cfg.ReportFormat, cfg.ReportLimit)
	if err := reporter.Write(result); err != nil {
		m.ErrorsCount.WithLabelValues("report").Inc()
		log.Error("Failed to write report", "error", err)
		return 1
	}

	log.Info("Flight analytics finished",
		"warnings", len(result.Warnings),
		"unresolved", len(result.FrequentFlyers.Unresolved),
		"coTravelWindow", report.DateWindow(cfg.CoTravelFrom, cfg.CoTravelTo),
	)
	return 0
}

func writeMetrics(m *metrics.Metrics, path string, log logger.Logger) {
	if path == "" {
		return
	}
	if err := m.WriteTextfile(path); err != nil {
		log.Error("Failed to write metrics", "path", path, "error", err)
	}
}

// openSource builds the repositories for the configured source. The returned
// close function releases any connection it opened.
func openSource(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.FlightRepository, repository.PassengerRepository, func(), error) {
	switch cfg.DataSource {
	case config.SourceMongoDB:
		log.Info("Connecting to MongoDB")
		client, db, err := persistence.OpenMongoSource(ctx, persistence.MongoSource{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDB,
			Username: cfg.MongoUser,
			Password: cfg.MongoPassword,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error("MongoDB disconnect error", "error", err)
			}
		}
		return sourceRepo.NewMongoFlightRepository(db, cfg.MongoFlightsCollection, log),
			sourceRepo.NewMongoPassengerRepository(db, cfg.MongoPassengersCollection, log),
			closeFn, nil

	case config.SourcePostgres:
		log.Info("Connecting to PostgreSQL")
		db, err := persistence.NewPostgresDB(ctx, cfg.PostgresURI)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := persistence.ClosePostgresDB(db); err != nil {
				log.Error("PostgreSQL close error", "error", err)
			}
		}
		return sourceRepo.NewGormFlightRepository(db, log),
			sourceRepo.NewGormPassengerRepository(db, log),
			closeFn, nil

	default:
		sources := router.NewSourceRouter(log)
		if cfg.GmailEnabled() {
			gmailOAuth := oauth.NewGmailOAuth(cfg.GmailClientID, cfg.GmailClientSecret, cfg.GmailRefreshToken, "", log)
			tokenSource, err := gmailOAuth.GetTokenSource(ctx)
			if err != nil {
				return nil, nil, nil, err
			}
			gmailFetcher, err := fetcher.NewGmailFetcher(ctx, tokenSource, log)
			if err != nil {
				return nil, nil, nil, err
			}
			sources.Register(gmailFetcher)
		}
		sources.Register(fetcher.NewHTTPFetcher(cfg.HTTPTimeout, log))
		sources.Register(fetcher.NewFileFetcher(log))

		parser := utils.NewRecordParser(log)
		return sourceRepo.NewCSVFlightRepository(sources, parser, cfg.FlightsLocation),
			sourceRepo.NewCSVPassengerRepository(sources, parser, cfg.PassengersLocation),
			func() {}, nil
	}
}
