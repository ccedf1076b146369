package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dasmondroy97/Quantexa/internal/domain/entity"
	"github.com/dasmondroy97/Quantexa/internal/infrastructure/config"
)

func sampleReport() *entity.AnalyticsReport {
	return &entity.AnalyticsReport{
		RunID:       "run-1",
		GeneratedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Hub:         "uk",
		CoTravelMin: 3,
		Monthly: []entity.MonthlyCount{
			{Month: time.January, Count: 4},
			{Month: time.February, Count: 2},
		},
		FrequentFlyers: entity.FrequentFlyerRanking{
			Ranking: []entity.FrequentFlyer{
				{Passenger: entity.Passenger{ID: 2, FirstName: "Bob", LastName: "Two"}, FlightCount: 4},
				{Passenger: entity.Passenger{ID: 1, FirstName: "Ann", LastName: "One"}, FlightCount: 1},
			},
			Unresolved: []entity.IntegrityError{{PassengerID: 999, FlightCount: 1}},
		},
		LongestRuns:   []entity.LongestRun{{PassengerID: 2, Span: 3}},
		CoTravelPairs: []entity.CoTravelPair{{PassengerA: 1, PassengerB: 2, FlightCount: 3}},
		Warnings: []entity.RowError{
			{Dataset: entity.DatasetFlights, Line: 5, Fields: []string{"x", "1"}, Reason: `invalid passengerId "x"`},
			{Dataset: entity.DatasetPassengers, Reason: "duplicate passengerId 1"},
		},
	}
}

func TestConsoleReporter_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConsoleReporter(&buf, config.FormatText, 1).Write(sampleReport()))
	out := buf.String()

	assert.Contains(t, out, "Flights per month")
	assert.Contains(t, out, "Longest run without visiting uk")
	assert.Contains(t, out, "Passengers with at least 3 flights together")
	assert.Contains(t, out, "Bob")
	assert.NotContains(t, out, "Ann", "ranking should be cut to the limit")
	assert.Contains(t, out, "Warnings (3)")
	assert.Contains(t, out, `flights line 5: invalid passengerId "x"`)
	assert.Contains(t, out, "passengers: duplicate passengerId 1")
	assert.Contains(t, out, "passenger 999 not found")

	monthsAt := strings.Index(out, "Flights per month")
	flyersAt := strings.Index(out, "Most frequent flyers")
	assert.Less(t, monthsAt, flyersAt)
}

func TestConsoleReporter_JSON(t *testing.T) {
	var buf bytes.Buffer
	report := sampleReport()
	require.NoError(t, NewConsoleReporter(&buf, config.FormatJSON, 1).Write(report))

	var decoded entity.AnalyticsReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded.Monthly, 1)
	assert.Len(t, decoded.FrequentFlyers.Ranking, 1)
	assert.Len(t, decoded.FrequentFlyers.Unresolved, 1)
	assert.Len(t, decoded.Warnings, 2)
	assert.Len(t, report.Monthly, 2, "input report must not be truncated")
}

func TestConsoleReporter_UnknownFormat(t *testing.T) {
	err := NewConsoleReporter(&bytes.Buffer{}, "xml", 0).Write(sampleReport())
	assert.Error(t, err)
}

func TestDateWindow(t *testing.T) {
	assert.Equal(t, "[-inf, +inf]", DateWindow(time.Time{}, time.Time{}))
	assert.Equal(t, "[2017-01-01, +inf]", DateWindow(time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), time.Time{}))
}
