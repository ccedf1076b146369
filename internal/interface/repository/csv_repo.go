package repository

import (
	"context"
	"fmt"

	"github.com/dasmondroy97/Quantexa/internal/domain/entity"
	"github.com/dasmondroy97/Quantexa/internal/domain/repository"
	"github.com/dasmondroy97/Quantexa/pkg/utils"
)

// CSVFlightRepository loads flights from a CSV document at a location
type CSVFlightRepository struct {
	fetcher  repository.DataFetcher
	parser   *utils.RecordParser
	location string
}

// NewCSVFlightRepository creates a new CSV flight repository
func NewCSVFlightRepository(fetcher repository.DataFetcher, parser *utils.RecordParser, location string) repository.FlightRepository {
	return &CSVFlightRepository{
		fetcher:  fetcher,
		parser:   parser,
		location: location,
	}
}

// FindAll fetches and validates every flight row
func (r *CSVFlightRepository) FindAll(ctx context.Context) (*entity.FlightBatch, error) {
	data, err := r.fetcher.Fetch(ctx, r.location)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", r.location, err)
	}
	return r.parser.ParseFlights(data), nil
}

// CSVPassengerRepository loads passengers from a CSV document at a location
type CSVPassengerRepository struct {
	fetcher  repository.DataFetcher
	parser   *utils.RecordParser
	location string
}

// NewCSVPassengerRepository creates a new CSV passenger repository
func NewCSVPassengerRepository(fetcher repository.DataFetcher, parser *utils.RecordParser, location string) repository.PassengerRepository {
	return &CSVPassengerRepository{
		fetcher:  fetcher,
		parser:   parser,
		location: location,
	}
}

// FindAll fetches and validates every passenger row
func (r *CSVPassengerRepository) FindAll(ctx context.Context) (*entity.PassengerBatch, error) {
	data, err := r.fetcher.Fetch(ctx, r.location)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", r.location, err)
	}
	return r.parser.ParsePassengers(data), nil
}
