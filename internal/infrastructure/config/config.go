// internal/infrastructure/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Source kinds
const (
	SourceCSV      = "csv"
	SourceMongoDB  = "mongodb"
	SourcePostgres = "postgres"
)

// Report formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string `validate:"oneof=debug info warn error"`

	// Source
	DataSource         string `validate:"oneof=csv mongodb postgres"`
	FlightsLocation    string `validate:"required_if=DataSource csv"`
	PassengersLocation string `validate:"required_if=DataSource csv"`
	HTTPTimeout        time.Duration

	// MongoDB
	MongoURI                  string `validate:"required_if=DataSource mongodb"`
	MongoDB                   string `validate:"required_if=DataSource mongodb"`
	MongoUser                 string
	MongoPassword             string
	MongoFlightsCollection    string
	MongoPassengersCollection string

	// PostgreSQL
	PostgresURI string `validate:"required_if=DataSource postgres"`

	// Gmail
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string

	// Analytics
	HubLocation       string `validate:"required"`
	CoTravelThreshold int    `validate:"min=1"`
	CoTravelFrom      time.Time
	CoTravelTo        time.Time

	// Report
	ReportLimit  int    `validate:"min=0"`
	ReportFormat string `validate:"oneof=text json"`

	// Metrics
	MetricsTextfile string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	coTravelFrom, err := getEnvAsDate("CO_TRAVEL_FROM")
	if err != nil {
		return nil, err
	}
	coTravelTo, err := getEnvAsDate("CO_TRAVEL_TO")
	if err != nil {
		return nil, err
	}
	httpTimeout, err := getEnvAsInt("HTTP_TIMEOUT", 30)
	if err != nil {
		return nil, err
	}
	coTravelThreshold, err := getEnvAsInt("CO_TRAVEL_THRESHOLD", 3)
	if err != nil {
		return nil, err
	}
	reportLimit, err := getEnvAsInt("REPORT_LIMIT", 100)
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppVersion: getEnv("APP_VERSION", "1.0.0"),
		LogLevel:   strings.ToLower(getEnv("LOG_LEVEL", "info")),

		DataSource:         strings.ToLower(getEnv("DATA_SOURCE", SourceCSV)),
		FlightsLocation:    getEnv("FLIGHTS_LOCATION", "data/flightData.csv"),
		PassengersLocation: getEnv("PASSENGERS_LOCATION", "data/passengers.csv"),
		HTTPTimeout:        time.Duration(httpTimeout) * time.Second,

		MongoURI:                  getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:                   getEnv("MONGO_DB", "flightstats"),
		MongoUser:                 getEnv("MONGO_USER", ""),
		MongoPassword:             getEnv("MONGO_PASSWORD", ""),
		MongoFlightsCollection:    getEnv("MONGO_FLIGHTS_COLLECTION", "flights"),
		MongoPassengersCollection: getEnv("MONGO_PASSENGERS_COLLECTION", "passengers"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),

		HubLocation:       getEnv("HUB_LOCATION", "uk"),
		CoTravelThreshold: coTravelThreshold,
		CoTravelFrom:      coTravelFrom,
		CoTravelTo:        coTravelTo,

		ReportLimit:  reportLimit,
		ReportFormat: strings.ToLower(getEnv("REPORT_FORMAT", FormatText)),

		MetricsTextfile: getEnv("METRICS_TEXTFILE", ""),
	}

	return config, nil
}

// Validate checks the configuration for values the run cannot start with
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if !c.CoTravelFrom.IsZero() && !c.CoTravelTo.IsZero() && c.CoTravelTo.Before(c.CoTravelFrom) {
		return fmt.Errorf("invalid configuration: CO_TRAVEL_TO is before CO_TRAVEL_FROM")
	}
	return nil
}

// GmailEnabled reports whether Gmail credentials are configured
func (c *Config) GmailEnabled() bool {
	return c.GmailClientID != "" && c.GmailClientSecret != "" && c.GmailRefreshToken != ""
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt returns defaultValue when key is unset and fails when it is
// set to something that is not an integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := strings.TrimSpace(getEnv(key, ""))
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: want an integer", key, valueStr)
	}
	return value, nil
}

// getEnvAsDate parses an optional yyyy-mm-dd date. Unset yields the zero time.
func getEnvAsDate(key string) (time.Time, error) {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return time.Time{}, nil
	}
	value, err := time.Parse(time.DateOnly, valueStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: want yyyy-mm-dd", key, valueStr)
	}
	return value, nil
}
