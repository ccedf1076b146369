package utils

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dasmondroy97/Quantexa/internal/domain/entity"
	"github.com/dasmondroy97/Quantexa/pkg/logger"
)

// RecordParser turns raw tabular rows into validated passengers and flights.
// A row that fails validation is reported, never fatal to the batch.
type RecordParser struct {
	logger logger.Logger
}

// NewRecordParser creates a new record parser
func NewRecordParser(logger logger.Logger) *RecordParser {
	return &RecordParser{
		logger: logger,
	}
}

// ParsePassenger validates an (id, firstName, lastName) row
func (p *RecordParser) ParsePassenger(fields []string) (entity.Passenger, error) {
	if len(fields) != PassengerFieldCount {
		return entity.Passenger{}, fmt.Errorf("expected %d fields, got %d", PassengerFieldCount, len(fields))
	}
	fields = trimFields(fields)
	if err := requireNonEmpty(fields, "passengerId", "firstName", "lastName"); err != nil {
		return entity.Passenger{}, err
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return entity.Passenger{}, fmt.Errorf("invalid passengerId %q", fields[0])
	}

	return entity.Passenger{
		ID:        id,
		FirstName: fields[1],
		LastName:  fields[2],
	}, nil
}

// ParseFlight validates a (passengerId, flightId, from, to, date) row
func (p *RecordParser) ParseFlight(fields []string) (entity.Flight, error) {
	if len(fields) != FlightFieldCount {
		return entity.Flight{}, fmt.Errorf("expected %d fields, got %d", FlightFieldCount, len(fields))
	}
	fields = trimFields(fields)
	if err := requireNonEmpty(fields, "passengerId", "flightId", "from", "to", "date"); err != nil {
		return entity.Flight{}, err
	}

	passengerID, err := strconv.Atoi(fields[0])
	if err != nil {
		return entity.Flight{}, fmt.Errorf("invalid passengerId %q", fields[0])
	}
	flightID, err := strconv.Atoi(fields[1])
	if err != nil {
		return entity.Flight{}, fmt.Errorf("invalid flightId %q", fields[1])
	}
	date, err := ParseFlightDate(fields[4])
	if err != nil {
		return entity.Flight{}, err
	}

	return entity.Flight{
		PassengerID: passengerID,
		FlightID:    flightID,
		From:        fields[2],
		To:          fields[3],
		Date:        date,
	}, nil
}

// ParseFlightDate parses a dd-MM-yy date. The year is always 2000+yy.
func ParseFlightDate(value string) (time.Time, error) {
	parts := strings.Split(value, "-")
	if len(parts) != 3 || !isTwoDigits(parts[2]) {
		return time.Time{}, fmt.Errorf("invalid date %q: want dd-MM-yy", value)
	}
	yy, _ := strconv.Atoi(parts[2])
	expanded := fmt.Sprintf("%s-%s-%d", parts[0], parts[1], CENTURY+yy)

	date, err := time.Parse(DATE_LAYOUT, expanded)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: want dd-MM-yy", value)
	}
	return date, nil
}

// ParsePassengers tokenizes a passenger CSV, discards its header row and
// validates every remaining row
func (p *RecordParser) ParsePassengers(data []byte) *entity.PassengerBatch {
	batch := &entity.PassengerBatch{}
	p.eachRow(data, entity.DatasetPassengers, &batch.Rejects, func(line int, fields []string) {
		passenger, err := p.ParsePassenger(fields)
		if err != nil {
			batch.Rejects = append(batch.Rejects, rowError(entity.DatasetPassengers, line, fields, err))
			return
		}
		batch.Passengers = append(batch.Passengers, passenger)
	})

	p.logger.Info("Parsed passengers",
		"accepted", len(batch.Passengers),
		"rejected", len(batch.Rejects))
	return batch
}

// ParseFlights tokenizes a flight CSV, discards its header row and
// validates every remaining row
func (p *RecordParser) ParseFlights(data []byte) *entity.FlightBatch {
	batch := &entity.FlightBatch{}
	p.eachRow(data, entity.DatasetFlights, &batch.Rejects, func(line int, fields []string) {
		flight, err := p.ParseFlight(fields)
		if err != nil {
			batch.Rejects = append(batch.Rejects, rowError(entity.DatasetFlights, line, fields, err))
			return
		}
		batch.Flights = append(batch.Flights, flight)
	})

	p.logger.Info("Parsed flights",
		"accepted", len(batch.Flights),
		"rejected", len(batch.Rejects))
	return batch
}

// eachRow feeds every data row after the header to fn. Tokenizer failures
// are appended to rejects.
func (p *RecordParser) eachRow(data []byte, dataset string, rejects *[]entity.RowError, fn func(line int, fields []string)) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header := true
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			return
		}
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				p.logger.Error("Failed to read rows", "dataset", dataset, "error", err)
				return
			}
			*rejects = append(*rejects, entity.RowError{
				Dataset: dataset,
				Line:    parseErr.Line,
				Reason:  parseErr.Err.Error(),
			})
			header = false
			continue
		}

		line, _ := reader.FieldPos(0)
		if header {
			header = false
			p.logger.Debug("Discarding header", "dataset", dataset, "header", fields)
			continue
		}
		fn(line, fields)
	}
}

func rowError(dataset string, line int, fields []string, err error) entity.RowError {
	return entity.RowError{
		Dataset: dataset,
		Line:    line,
		Fields:  fields,
		Reason:  err.Error(),
	}
}

func trimFields(fields []string) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = strings.TrimSpace(f)
	}
	return out
}

func requireNonEmpty(fields []string, names ...string) error {
	for i, name := range names {
		if fields[i] == "" {
			return fmt.Errorf("empty field %s", name)
		}
	}
	return nil
}

func isTwoDigits(s string) bool {
	return len(s) == 2 && s[0] >= '0' && s[0] <= '9' && s[1] >= '0' && s[1] <= '9'
}
