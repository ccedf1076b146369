package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dasmondroy97/Quantexa/internal/domain/entity"
	"github.com/dasmondroy97/Quantexa/internal/domain/repository"
	"github.com/dasmondroy97/Quantexa/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// flightDocument mirrors a flight document. Ids are pointers so a missing
// field can be told apart from 0.
type flightDocument struct {
	PassengerID *int      `bson:"passengerId"`
	FlightID    *int      `bson:"flightId"`
	From        string    `bson:"from"`
	To          string    `bson:"to"`
	Date        time.Time `bson:"date"`
}

func (d flightDocument) toEntity() (entity.Flight, error) {
	if d.PassengerID == nil {
		return entity.Flight{}, errors.New("missing passengerId")
	}
	if d.FlightID == nil {
		return entity.Flight{}, errors.New("missing flightId")
	}
	flight := entity.Flight{
		PassengerID: *d.PassengerID,
		FlightID:    *d.FlightID,
		From:        d.From,
		To:          d.To,
		Date:        d.Date,
	}
	return flight, flight.Validate()
}

type passengerDocument struct {
	PassengerID *int   `bson:"passengerId"`
	FirstName   string `bson:"firstName"`
	LastName    string `bson:"lastName"`
}

func (d passengerDocument) toEntity() (entity.Passenger, error) {
	if d.PassengerID == nil {
		return entity.Passenger{}, errors.New("missing passengerId")
	}
	passenger := entity.Passenger{
		ID:        *d.PassengerID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
	}
	return passenger, passenger.Validate()
}

// MongoFlightRepository implements FlightRepository over a MongoDB collection
type MongoFlightRepository struct {
	collection *mongo.Collection
	logger     logger.Logger
}

// NewMongoFlightRepository creates a new MongoDB flight repository
func NewMongoFlightRepository(db *mongo.Database, collection string, logger logger.Logger) repository.FlightRepository {
	return &MongoFlightRepository{
		collection: db.Collection(collection),
		logger:     logger,
	}
}

// FindAll decodes every flight document in insertion order. Documents that
// fail to decode or validate are returned as rejects; Line is the 1-based
// document position.
func (r *MongoFlightRepository) FindAll(ctx context.Context) (*entity.FlightBatch, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: find flights: %v", repository.ErrSourceUnavailable, err)
	}
	defer cursor.Close(ctx)

	batch := &entity.FlightBatch{}
	position := 0
	for cursor.Next(ctx) {
		position++
		var doc flightDocument
		if err := cursor.Decode(&doc); err != nil {
			batch.Rejects = append(batch.Rejects, documentReject(entity.DatasetFlights, position, cursor.Current, err))
			continue
		}
		flight, err := doc.toEntity()
		if err != nil {
			batch.Rejects = append(batch.Rejects, documentReject(entity.DatasetFlights, position, cursor.Current, err))
			continue
		}
		batch.Flights = append(batch.Flights, flight)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate flights: %v", repository.ErrSourceUnavailable, err)
	}

	r.logger.Info("Loaded flights from MongoDB",
		"collection", r.collection.Name(),
		"accepted", len(batch.Flights),
		"rejected", len(batch.Rejects))
	return batch, nil
}

// MongoPassengerRepository implements PassengerRepository over a MongoDB collection
type MongoPassengerRepository struct {
	collection *mongo.Collection
	logger     logger.Logger
}

// NewMongoPassengerRepository creates a new MongoDB passenger repository
func NewMongoPassengerRepository(db *mongo.Database, collection string, logger logger.Logger) repository.PassengerRepository {
	return &MongoPassengerRepository{
		collection: db.Collection(collection),
		logger:     logger,
	}
}

// FindAll decodes every passenger document in insertion order
func (r *MongoPassengerRepository) FindAll(ctx context.Context) (*entity.PassengerBatch, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("%w: find passengers: %v", repository.ErrSourceUnavailable, err)
	}
	defer cursor.Close(ctx)

	batch := &entity.PassengerBatch{}
	position := 0
	for cursor.Next(ctx) {
		position++
		var doc passengerDocument
		if err := cursor.Decode(&doc); err != nil {
			batch.Rejects = append(batch.Rejects, documentReject(entity.DatasetPassengers, position, cursor.Current, err))
			continue
		}
		passenger, err := doc.toEntity()
		if err != nil {
			batch.Rejects = append(batch.Rejects, documentReject(entity.DatasetPassengers, position, cursor.Current, err))
			continue
		}
		batch.Passengers = append(batch.Passengers, passenger)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate passengers: %v", repository.ErrSourceUnavailable, err)
	}

	r.logger.Info("Loaded passengers from MongoDB",
		"collection", r.collection.Name(),
		"accepted", len(batch.Passengers),
		"rejected", len(batch.Rejects))
	return batch, nil
}

func documentReject(dataset string, position int, raw bson.Raw, err error) entity.RowError {
	return entity.RowError{
		Dataset: dataset,
		Line:    position,
		Fields:  []string{raw.String()},
		Reason:  err.Error(),
	}
}
