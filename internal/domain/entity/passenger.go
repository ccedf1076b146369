// internal/domain/entity/passenger.go
package entity

import (
	"errors"
	"fmt"
)

// Passenger represents an entry of the passenger directory
type Passenger struct {
	ID        int    `bson:"passengerId" json:"passengerId"`
	FirstName string `bson:"firstName" json:"firstName"`
	LastName  string `bson:"lastName" json:"lastName"`
}

// FullName returns "FirstName LastName"
func (p Passenger) FullName() string {
	return fmt.Sprintf("%s %s", p.FirstName, p.LastName)
}

// Validate checks the fields a decoded (non-CSV) record must carry.
func (p Passenger) Validate() error {
	if p.FirstName == "" {
		return errors.New("missing first name")
	}
	if p.LastName == "" {
		return errors.New("missing last name")
	}
	return nil
}

// PassengerBatch is the outcome of loading a passenger dataset.
type PassengerBatch struct {
	Passengers []Passenger
	Rejects    []RowError
}

// PassengerDirectory resolves passenger ids to passengers.
type PassengerDirectory map[int]Passenger

// NewPassengerDirectory indexes passengers by id. When an id repeats, the
// first record wins and the later ones are returned as duplicates.
func NewPassengerDirectory(passengers []Passenger) (PassengerDirectory, []Passenger) {
	dir := make(PassengerDirectory, len(passengers))
	var duplicates []Passenger
	for _, p := range passengers {
		if _, exists := dir[p.ID]; exists {
			duplicates = append(duplicates, p)
			continue
		}
		dir[p.ID] = p
	}
	return dir, duplicates
}

// Lookup returns the passenger with the given id.
func (d PassengerDirectory) Lookup(id int) (Passenger, bool) {
	p, ok := d[id]
	return p, ok
}
