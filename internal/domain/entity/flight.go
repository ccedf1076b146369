// internal/domain/entity/flight.go
package entity

import (
	"errors"
	"time"
)

// Flight is one passenger's leg on one flight instance.
// Many Flight records share a FlightID, one per passenger aboard.
type Flight struct {
	PassengerID int       `bson:"passengerId" json:"passengerId"`
	FlightID    int       `bson:"flightId" json:"flightId"`
	From        string    `bson:"from" json:"from"`
	To          string    `bson:"to" json:"to"`
	Date        time.Time `bson:"date" json:"date"`
}

// TouchesLocation reports whether either endpoint equals location.
func (f Flight) TouchesLocation(location string) bool {
	return f.From == location || f.To == location
}

// Validate checks the fields a decoded (non-CSV) record must carry.
// From == To is tolerated.
func (f Flight) Validate() error {
	if f.From == "" {
		return errors.New("missing from location")
	}
	if f.To == "" {
		return errors.New("missing to location")
	}
	if f.Date.IsZero() {
		return errors.New("missing date")
	}
	return nil
}

// FlightBatch is the outcome of loading a flight dataset: the records that
// passed validation and the rows that did not.
type FlightBatch struct {
	Flights []Flight
	Rejects []RowError
}
