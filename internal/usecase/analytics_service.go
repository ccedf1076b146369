package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dasmondroy97/Quantexa/internal/domain/entity"
	"github.com/dasmondroy97/Quantexa/internal/domain/repository"
	"github.com/dasmondroy97/Quantexa/pkg/logger"
	"github.com/dasmondroy97/Quantexa/pkg/metrics"
)

// Configuration failures detected before any computation starts
var (
	ErrEmptyHub  = errors.New("hub location must not be empty")
	ErrNoFlights = errors.New("flight dataset is empty")
)

// Analytic names used in logs and metric labels
const (
	AnalyticMonthly        = "monthly"
	AnalyticFrequentFlyers = "frequent_flyers"
	AnalyticLongestRuns    = "longest_runs"
	AnalyticCoTravel       = "co_travel"
)

// AnalyticsOptions are the parameters of a run
type AnalyticsOptions struct {
	Hub      string
	CoTravel CoTravelOptions
}

// Validate checks the options before any computation
func (o AnalyticsOptions) Validate() error {
	if o.Hub == "" {
		return ErrEmptyHub
	}
	return o.CoTravel.Validate()
}

// AnalyticsService loads both datasets and runs the four analytics over them
type AnalyticsService struct {
	flightRepo    repository.FlightRepository
	passengerRepo repository.PassengerRepository
	metrics       *metrics.Metrics
	logger        logger.Logger
	now           func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	flightRepo repository.FlightRepository,
	passengerRepo repository.PassengerRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		flightRepo:    flightRepo,
		passengerRepo: passengerRepo,
		metrics:       metrics,
		logger:        logger,
		now:           time.Now,
	}
}

// Run loads the datasets from the repositories and analyzes them
func (s *AnalyticsService) Run(ctx context.Context, opts AnalyticsOptions) (*entity.AnalyticsReport, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	var (
		flights    *entity.FlightBatch
		passengers *entity.PassengerBatch
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		flights, err = s.flightRepo.FindAll(gctx)
		if err != nil {
			s.metrics.ErrorsCount.WithLabelValues("load_flights").Inc()
			return fmt.Errorf("load flights: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		passengers, err = s.passengerRepo.FindAll(gctx)
		if err != nil {
			s.metrics.ErrorsCount.WithLabelValues("load_passengers").Inc()
			return fmt.Errorf("load passengers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("Failed to load datasets", "error", err)
		return nil, err
	}

	s.recordRejects(entity.DatasetFlights, len(flights.Flights), flights.Rejects)
	s.recordRejects(entity.DatasetPassengers, len(passengers.Passengers), passengers.Rejects)

	report, err := s.Analyze(ctx, flights.Flights, passengers.Passengers, opts)
	if err != nil {
		return nil, err
	}

	warnings := make([]entity.RowError, 0, len(flights.Rejects)+len(passengers.Rejects)+len(report.Warnings))
	warnings = append(warnings, flights.Rejects...)
	warnings = append(warnings, passengers.Rejects...)
	report.Warnings = append(warnings, report.Warnings...)
	return report, nil
}

// Analyze runs the four analytics over validated in-memory records. The
// inputs are only read; the analytics run concurrently.
func (s *AnalyticsService) Analyze(ctx context.Context, flights []entity.Flight, passengers []entity.Passenger, opts AnalyticsOptions) (*entity.AnalyticsReport, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(flights) == 0 {
		return nil, ErrNoFlights
	}

	directory, duplicates := entity.NewPassengerDirectory(passengers)
	report := &entity.AnalyticsReport{
		GeneratedAt: s.now().UTC(),
		Hub:         opts.Hub,
		CoTravelMin: opts.CoTravel.MinFlights,
	}
	for _, dup := range duplicates {
		s.logger.Warn("Duplicate passenger id, keeping first record", "passengerId", dup.ID)
		report.Warnings = append(report.Warnings, entity.RowError{
			Dataset: entity.DatasetPassengers,
			Fields:  []string{fmt.Sprint(dup.ID), dup.FirstName, dup.LastName},
			Reason:  fmt.Sprintf("duplicate passengerId %d", dup.ID),
		})
	}

	s.logger.Info("Starting analytics",
		"flights", len(flights),
		"passengers", len(directory),
		"hub", opts.Hub,
		"coTravelMin", opts.CoTravel.MinFlights)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.timed(gctx, AnalyticMonthly, func() int {
			report.Monthly = CountFlightsByMonth(flights)
			return len(report.Monthly)
		})
	})
	g.Go(func() error {
		return s.timed(gctx, AnalyticFrequentFlyers, func() int {
			report.FrequentFlyers = RankFrequentFlyers(flights, directory)
			return len(report.FrequentFlyers.Ranking)
		})
	})
	g.Go(func() error {
		return s.timed(gctx, AnalyticLongestRuns, func() int {
			report.LongestRuns = LongestRunsOutsideHub(flights, opts.Hub)
			return len(report.LongestRuns)
		})
	})
	g.Go(func() error {
		var pairsErr error
		err := s.timed(gctx, AnalyticCoTravel, func() int {
			report.CoTravelPairs, pairsErr = CountCoTravelPairs(flights, opts.CoTravel)
			return len(report.CoTravelPairs)
		})
		if err != nil {
			return err
		}
		return pairsErr
	})
	if err := g.Wait(); err != nil {
		s.metrics.ErrorsCount.WithLabelValues("analyze").Inc()
		return nil, err
	}

	for _, ie := range report.FrequentFlyers.Unresolved {
		s.logger.Warn("Flights reference unknown passenger",
			"passengerId", ie.PassengerID,
			"flights", ie.FlightCount)
	}
	s.metrics.IntegrityErrors.Add(float64(len(report.FrequentFlyers.Unresolved)))

	s.logger.Info("Analytics completed",
		"months", len(report.Monthly),
		"rankedPassengers", len(report.FrequentFlyers.Ranking),
		"unresolvedPassengers", len(report.FrequentFlyers.Unresolved),
		"longestRuns", len(report.LongestRuns),
		"coTravelPairs", len(report.CoTravelPairs))

	return report, nil
}

// timed runs fn unless ctx is already done and records its duration and
// result size
func (s *AnalyticsService) timed(ctx context.Context, analytic string, fn func() int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	n := fn()
	elapsed := time.Since(start)

	s.metrics.AnalyticsDuration.WithLabelValues(analytic).Observe(elapsed.Seconds())
	s.metrics.AnalyticsResults.WithLabelValues(analytic).Set(float64(n))
	s.logger.Debug("Analytic finished", "analytic", analytic, "results", n, "duration", elapsed)
	return nil
}

func (s *AnalyticsService) recordRejects(dataset string, accepted int, rejects []entity.RowError) {
	s.metrics.RowsLoaded.WithLabelValues(dataset).Add(float64(accepted))
	s.metrics.RowsRejected.WithLabelValues(dataset).Add(float64(len(rejects)))
	for _, r := range rejects {
		s.logger.Warn("Row rejected",
			"dataset", r.Dataset,
			"line", r.Line,
			"reason", r.Reason)
	}
}
