package repository

import (
	"context"

	"github.com/dasmondroy97/Quantexa/internal/domain/entity"
)

// PassengerRepository defines the interface for loading the passenger directory
type PassengerRepository interface {
	FindAll(ctx context.Context) (*entity.PassengerBatch, error)
}
