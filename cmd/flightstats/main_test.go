package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRunEnv(t *testing.T, dir string) string {
	t.Helper()
	passengers := filepath.Join(dir, "passengers.csv")
	require.NoError(t, os.WriteFile(passengers, []byte("passengerId,firstName,lastName\n1,Ann,One\n"), 0o644))

	metricsPath := filepath.Join(dir, "flightstats.prom")
	t.Setenv("DATA_SOURCE", "csv")
	t.Setenv("PASSENGERS_LOCATION", passengers)
	t.Setenv("GMAIL_CLIENT_ID", "")
	t.Setenv("GMAIL_CLIENT_SECRET", "")
	t.Setenv("GMAIL_REFRESH_TOKEN", "")
	t.Setenv("CO_TRAVEL_FROM", "")
	t.Setenv("CO_TRAVEL_TO", "")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("METRICS_TEXTFILE", metricsPath)
	return metricsPath
}

func TestRun_FailedLoadStillWritesMetrics(t *testing.T) {
	dir := t.TempDir()
	metricsPath := setRunEnv(t, dir)
	t.Setenv("FLIGHTS_LOCATION", filepath.Join(dir, "missing.csv"))

	assert.Equal(t, 1, run(nil))

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `flightstats_errors_total{operation="load_flights"} 1`)
}

func TestRun_Succeeds(t *testing.T) {
	dir := t.TempDir()
	metricsPath := setRunEnv(t, dir)
	flights := filepath.Join(dir, "flights.csv")
	require.NoError(t, os.WriteFile(flights, []byte("passengerId,flightId,from,to,date\n1,0,cg,ir,01-01-17\n"), 0o644))
	t.Setenv("FLIGHTS_LOCATION", flights)

	assert.Equal(t, 0, run([]string{"-format", "json", "-hub", "uk"}))

	data, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `flightstats_rows_loaded_total{dataset="flights"} 1`)
}

func TestRun_InvalidFlags(t *testing.T) {
	setRunEnv(t, t.TempDir())
	assert.Equal(t, 2, run([]string{"-min-together", "0"}))
}
