package entity

import (
	"fmt"
	"strings"
)

// Dataset names used in row errors and metrics labels
const (
	DatasetFlights    = "flights"
	DatasetPassengers = "passengers"
)

// RowError describes a source row that was dropped during validation.
type RowError struct {
	Dataset string   `json:"dataset"`
	Line    int      `json:"line"`
	Fields  []string `json:"fields,omitempty"`
	Reason  string   `json:"reason"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s line %d: %s [%s]", e.Dataset, e.Line, e.Reason, strings.Join(e.Fields, ","))
}

// IntegrityError is reported when flights reference a passenger id that is
// absent from the passenger directory.
type IntegrityError struct {
	PassengerID int `json:"passengerId"`
	FlightCount int `json:"flightCount"`
}

func (e IntegrityError) Error() string {
	return fmt.Sprintf("passenger %d not found in directory (%d flights)", e.PassengerID, e.FlightCount)
}
