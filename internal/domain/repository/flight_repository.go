package repository

import (
	"context"

	"github.com/dasmondroy97/Quantexa/internal/domain/entity"
)

// FlightRepository defines the interface for loading the flight dataset
type FlightRepository interface {
	FindAll(ctx context.Context) (*entity.FlightBatch, error)
}
