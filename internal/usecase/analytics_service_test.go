package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dasmondroy97/Quantexa/internal/domain/entity"
	"github.com/dasmondroy97/Quantexa/internal/domain/repository"
	"github.com/dasmondroy97/Quantexa/pkg/logger"
	"github.com/dasmondroy97/Quantexa/pkg/metrics"
)

type stubFlightRepo struct {
	batch *entity.FlightBatch
	err   error
}

func (r stubFlightRepo) FindAll(ctx context.Context) (*entity.FlightBatch, error) {
	return r.batch, r.err
}

type stubPassengerRepo struct {
	batch *entity.PassengerBatch
	err   error
}

func (r stubPassengerRepo) FindAll(ctx context.Context) (*entity.PassengerBatch, error) {
	return r.batch, r.err
}

func fixture() ([]entity.Flight, []entity.Passenger) {
	passengers := []entity.Passenger{
		{ID: 1, FirstName: "Ann", LastName: "One"},
		{ID: 2, FirstName: "Bob", LastName: "Two"},
		{ID: 3, FirstName: "Cid", LastName: "Three"},
	}
	var flights []entity.Flight
	for i := 0; i < 3; i++ {
		flights = append(flights,
			leg(1, i, "uk", "fr", day(i*40)),
			leg(2, i, "uk", "fr", day(i*40)),
		)
	}
	flights = append(flights,
		leg(3, 10, "us", "cn", day(1)),
		leg(3, 11, "cn", "ir", day(2)),
		leg(999, 12, "ir", "uk", day(3)),
	)
	return flights, passengers
}

func newTestService(flights stubFlightRepo, passengers stubPassengerRepo) (*AnalyticsService, *metrics.Metrics) {
	m := metrics.NewMetrics("test")
	s := NewAnalyticsService(flights, passengers, m, logger.NewNopLogger())
	s.now = func() time.Time { return baseDate }
	return s, m
}

func defaultOptions() AnalyticsOptions {
	return AnalyticsOptions{Hub: "uk", CoTravel: CoTravelOptions{MinFlights: 3}}
}

func TestAnalyze_ComputesAllAnalytics(t *testing.T) {
	flights, passengers := fixture()
	s, m := newTestService(stubFlightRepo{}, stubPassengerRepo{})

	report, err := s.Analyze(context.Background(), flights, passengers, defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, len(flights), totalMonthly(report.Monthly))
	require.Len(t, report.FrequentFlyers.Ranking, 3)
	assert.Equal(t, []entity.IntegrityError{{PassengerID: 999, FlightCount: 1}}, report.FrequentFlyers.Unresolved)
	assert.Equal(t, []entity.LongestRun{{PassengerID: 3, Span: 3}}, report.LongestRuns)
	assert.Equal(t, []entity.CoTravelPair{{PassengerA: 1, PassengerB: 2, FlightCount: 3}}, report.CoTravelPairs)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IntegrityErrors))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.AnalyticsResults.WithLabelValues(AnalyticFrequentFlyers)))
}

func TestAnalyze_Idempotent(t *testing.T) {
	flights, passengers := fixture()
	s, _ := newTestService(stubFlightRepo{}, stubPassengerRepo{})

	first, err := s.Analyze(context.Background(), flights, passengers, defaultOptions())
	require.NoError(t, err)
	second, err := s.Analyze(context.Background(), flights, passengers, defaultOptions())
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestAnalyze_FailsFastOnConfiguration(t *testing.T) {
	flights, passengers := fixture()
	s, _ := newTestService(stubFlightRepo{}, stubPassengerRepo{})
	ctx := context.Background()

	_, err := s.Analyze(ctx, flights, passengers, AnalyticsOptions{Hub: "uk"})
	assert.ErrorIs(t, err, ErrInvalidThreshold)

	_, err = s.Analyze(ctx, flights, passengers, AnalyticsOptions{CoTravel: CoTravelOptions{MinFlights: 1}})
	assert.ErrorIs(t, err, ErrEmptyHub)

	_, err = s.Analyze(ctx, nil, passengers, defaultOptions())
	assert.ErrorIs(t, err, ErrNoFlights)
}

func TestAnalyze_DuplicatePassengerWarns(t *testing.T) {
	flights, passengers := fixture()
	passengers = append(passengers, entity.Passenger{ID: 1, FirstName: "Other", LastName: "Ann"})
	s, _ := newTestService(stubFlightRepo{}, stubPassengerRepo{})

	report, err := s.Analyze(context.Background(), flights, passengers, defaultOptions())
	require.NoError(t, err)

	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0].Reason, "duplicate passengerId 1")
	assert.Equal(t, "Ann", report.FrequentFlyers.Ranking[0].Passenger.FirstName)
}

func TestRun_MergesRowRejects(t *testing.T) {
	flights, passengers := fixture()
	s, m := newTestService(
		stubFlightRepo{batch: &entity.FlightBatch{
			Flights: flights,
			Rejects: []entity.RowError{{Dataset: entity.DatasetFlights, Line: 4, Reason: "invalid flightId"}},
		}},
		stubPassengerRepo{batch: &entity.PassengerBatch{Passengers: passengers}},
	)

	report, err := s.Run(context.Background(), defaultOptions())
	require.NoError(t, err)

	require.Len(t, report.Warnings, 1)
	assert.Equal(t, 4, report.Warnings[0].Line)
	assert.Equal(t, float64(len(flights)), testutil.ToFloat64(m.RowsLoaded.WithLabelValues(entity.DatasetFlights)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RowsRejected.WithLabelValues(entity.DatasetFlights)))
}

func TestRun_SourceUnavailable(t *testing.T) {
	_, passengers := fixture()
	s, m := newTestService(
		stubFlightRepo{err: repository.ErrSourceUnavailable},
		stubPassengerRepo{batch: &entity.PassengerBatch{Passengers: passengers}},
	)

	report, err := s.Run(context.Background(), defaultOptions())
	assert.Nil(t, report)
	assert.True(t, errors.Is(err, repository.ErrSourceUnavailable))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ErrorsCount.WithLabelValues("load_flights")))
}

func TestRun_ValidatesBeforeLoading(t *testing.T) {
	s, _ := newTestService(stubFlightRepo{err: errors.New("must not be called")}, stubPassengerRepo{})

	_, err := s.Run(context.Background(), AnalyticsOptions{Hub: "uk", CoTravel: CoTravelOptions{MinFlights: -1}})
	assert.ErrorIs(t, err, ErrInvalidThreshold)
}
