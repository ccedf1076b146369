package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dasmondroy97/Quantexa/internal/domain/entity"
	"github.com/dasmondroy97/Quantexa/internal/domain/repository"
	"github.com/dasmondroy97/Quantexa/pkg/logger"

	"gorm.io/gorm"
)

const gormBatchSize = 1000

// Flights GORM model for database mapping. Nullable columns scan into
// sql.Null* so one bad row is rejected instead of failing the query.
type Flights struct {
	ID          uint           `gorm:"primaryKey"`
	PassengerID sql.NullInt64  `gorm:"column:passenger_id;index"`
	FlightID    sql.NullInt64  `gorm:"column:flight_id;index"`
	From        sql.NullString `gorm:"column:from_location"`
	To          sql.NullString `gorm:"column:to_location"`
	Date        sql.NullTime   `gorm:"column:flight_date;type:date"`
}

// TableName overrides the default table name
func (Flights) TableName() string {
	return "flights"
}

// Passengers GORM model for database mapping
type Passengers struct {
	PassengerID int64          `gorm:"column:passenger_id;primaryKey"`
	FirstName   sql.NullString `gorm:"column:first_name"`
	LastName    sql.NullString `gorm:"column:last_name"`
}

// TableName overrides the default table name
func (Passengers) TableName() string {
	return "passengers"
}

// toEntity converts the GORM model to a domain entity
func (m Flights) toEntity() (entity.Flight, error) {
	if !m.PassengerID.Valid {
		return entity.Flight{}, errors.New("missing passengerId")
	}
	if !m.FlightID.Valid {
		return entity.Flight{}, errors.New("missing flightId")
	}
	flight := entity.Flight{
		PassengerID: int(m.PassengerID.Int64),
		FlightID:    int(m.FlightID.Int64),
		From:        m.From.String,
		To:          m.To.String,
	}
	if m.Date.Valid {
		d := m.Date.Time
		flight.Date = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	return flight, flight.Validate()
}

func (m Flights) fields() []string {
	date := ""
	if m.Date.Valid {
		date = m.Date.Time.Format(time.DateOnly)
	}
	return []string{
		nullableInt(m.PassengerID),
		nullableInt(m.FlightID),
		m.From.String,
		m.To.String,
		date,
	}
}

// toEntity converts the GORM model to a domain entity
func (m Passengers) toEntity() (entity.Passenger, error) {
	passenger := entity.Passenger{
		ID:        int(m.PassengerID),
		FirstName: m.FirstName.String,
		LastName:  m.LastName.String,
	}
	return passenger, passenger.Validate()
}

func (m Passengers) fields() []string {
	return []string{strconv.FormatInt(m.PassengerID, 10), m.FirstName.String, m.LastName.String}
}

func nullableInt(v sql.NullInt64) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatInt(v.Int64, 10)
}

// GormFlightRepository implements FlightRepository over PostgreSQL
type GormFlightRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormFlightRepository creates a new GORM flight repository
func NewGormFlightRepository(db *gorm.DB, logger logger.Logger) repository.FlightRepository {
	return &GormFlightRepository{
		db:     db,
		logger: logger,
	}
}

// FindAll reads the flights table in primary key order
func (r *GormFlightRepository) FindAll(ctx context.Context) (*entity.FlightBatch, error) {
	batch := &entity.FlightBatch{}
	var rows []Flights
	position := 0

	result := r.db.WithContext(ctx).Order("id").FindInBatches(&rows, gormBatchSize, func(tx *gorm.DB, _ int) error {
		for _, row := range rows {
			position++
			flight, err := row.toEntity()
			if err != nil {
				batch.Rejects = append(batch.Rejects, entity.RowError{
					Dataset: entity.DatasetFlights,
					Line:    position,
					Fields:  row.fields(),
					Reason:  err.Error(),
				})
				continue
			}
			batch.Flights = append(batch.Flights, flight)
		}
		return nil
	})
	if result.Error != nil {
		return nil, fmt.Errorf("%w: query flights: %v", repository.ErrSourceUnavailable, result.Error)
	}

	r.logger.Info("Loaded flights from PostgreSQL",
		"accepted", len(batch.Flights),
		"rejected", len(batch.Rejects))
	return batch, nil
}

// GormPassengerRepository implements PassengerRepository over PostgreSQL
type GormPassengerRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormPassengerRepository creates a new GORM passenger repository
func NewGormPassengerRepository(db *gorm.DB, logger logger.Logger) repository.PassengerRepository {
	return &GormPassengerRepository{
		db:     db,
		logger: logger,
	}
}

// FindAll reads the passengers table in id order
func (r *GormPassengerRepository) FindAll(ctx context.Context) (*entity.PassengerBatch, error) {
	var rows []Passengers
	if err := r.db.WithContext(ctx).Order("passenger_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: query passengers: %v", repository.ErrSourceUnavailable, err)
	}

	batch := &entity.PassengerBatch{}
	for i, row := range rows {
		passenger, err := row.toEntity()
		if err != nil {
			batch.Rejects = append(batch.Rejects, entity.RowError{
				Dataset: entity.DatasetPassengers,
				Line:    i + 1,
				Fields:  row.fields(),
				Reason:  err.Error(),
			})
			continue
		}
		batch.Passengers = append(batch.Passengers, passenger)
	}

	r.logger.Info("Loaded passengers from PostgreSQL",
		"accepted", len(batch.Passengers),
		"rejected", len(batch.Rejects))
	return batch, nil
}
