package usecase

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dasmondroy97/Quantexa/internal/domain/entity"
)

// ErrInvalidThreshold is returned when the minimum co-flight count is not positive
var ErrInvalidThreshold = errors.New("co-travel threshold must be positive")

// CoTravelOptions configures the co-travel pair counter
type CoTravelOptions struct {
	// MinFlights is the number of shared flights a pair needs to be reported.
	MinFlights int
	// From and To bound the flight dates considered, inclusive. A zero
	// value leaves that side open.
	From time.Time
	To   time.Time
}

// Validate checks the options before any computation
func (o CoTravelOptions) Validate() error {
	if o.MinFlights <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidThreshold, o.MinFlights)
	}
	if !o.From.IsZero() && !o.To.IsZero() && o.To.Before(o.From) {
		return fmt.Errorf("co-travel window ends (%s) before it starts (%s)",
			o.To.Format(time.DateOnly), o.From.Format(time.DateOnly))
	}
	return nil
}

// inWindow compares calendar days, so any time on the To day is inside.
func (o CoTravelOptions) inWindow(date time.Time) bool {
	day := calendarDay(date)
	if !o.From.IsZero() && day.Before(calendarDay(o.From)) {
		return false
	}
	if !o.To.IsZero() && day.After(calendarDay(o.To)) {
		return false
	}
	return true
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type passengerPair struct {
	a, b int
}

// CountCoTravelPairs counts, for every unordered pair of distinct
// passengers, the flight instances they were both aboard. Pairs with fewer
// than opts.MinFlights shared flights are dropped. Results are sorted by
// count descending, then PassengerA, then PassengerB.
func CountCoTravelPairs(flights []entity.Flight, opts CoTravelOptions) ([]entity.CoTravelPair, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	aboard := make(map[int]map[int]struct{})
	for _, f := range flights {
		if !opts.inWindow(f.Date) {
			continue
		}
		set, ok := aboard[f.FlightID]
		if !ok {
			set = make(map[int]struct{})
			aboard[f.FlightID] = set
		}
		set[f.PassengerID] = struct{}{}
	}

	counts := make(map[passengerPair]int)
	for _, set := range aboard {
		if len(set) < 2 {
			continue
		}
		ids := make([]int, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				counts[passengerPair{ids[i], ids[j]}]++
			}
		}
	}

	result := make([]entity.CoTravelPair, 0)
	for pair, count := range counts {
		if count < opts.MinFlights {
			continue
		}
		result = append(result, entity.CoTravelPair{
			PassengerA:  pair.a,
			PassengerB:  pair.b,
			FlightCount: count,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		x, y := result[i], result[j]
		if x.FlightCount != y.FlightCount {
			return x.FlightCount > y.FlightCount
		}
		if x.PassengerA != y.PassengerA {
			return x.PassengerA < y.PassengerA
		}
		return x.PassengerB < y.PassengerB
	})
	return result, nil
}
