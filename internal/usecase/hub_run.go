package usecase

import (
	"sort"

	"github.com/dasmondroy97/Quantexa/internal/domain/entity"
)

// LongestRunsOutsideHub computes, for every passenger, the greatest number
// of distinct locations visited in a single run of flights that never touch
// the hub. Passengers whose best run is empty are omitted. Results are
// sorted by span descending, then passenger id ascending.
func LongestRunsOutsideHub(flights []entity.Flight, hub string) []entity.LongestRun {
	byPassenger := make(map[int][]entity.Flight)
	for _, f := range flights {
		byPassenger[f.PassengerID] = append(byPassenger[f.PassengerID], f)
	}

	result := make([]entity.LongestRun, 0, len(byPassenger))
	for id, legs := range byPassenger {
		span := MaxSpan(SplitRuns(Chronological(legs), hub))
		if span == 0 {
			continue
		}
		result = append(result, entity.LongestRun{PassengerID: id, Span: span})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Span != result[j].Span {
			return result[i].Span > result[j].Span
		}
		return result[i].PassengerID < result[j].PassengerID
	})
	return result
}

// Chronological returns a copy of flights ordered by date, then flight id.
// Flights equal on both keep their input order.
func Chronological(flights []entity.Flight) []entity.Flight {
	ordered := make([]entity.Flight, len(flights))
	copy(ordered, flights)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Date.Equal(ordered[j].Date) {
			return ordered[i].Date.Before(ordered[j].Date)
		}
		return ordered[i].FlightID < ordered[j].FlightID
	})
	return ordered
}

// SplitRuns partitions an ordered flight sequence into maximal runs of
// consecutive flights that do not touch hub. A hub-touching flight closes
// the current run and belongs to no run. Empty runs are not emitted.
func SplitRuns(ordered []entity.Flight, hub string) [][]entity.Flight {
	var runs [][]entity.Flight
	var current []entity.Flight
	for _, f := range ordered {
		if f.TouchesLocation(hub) {
			if len(current) > 0 {
				runs = append(runs, current)
			}
			current = nil
			continue
		}
		current = append(current, f)
	}
	if len(current) > 0 {
		runs = append(runs, current)
	}
	return runs
}

// Span counts the distinct locations among both endpoints of every flight.
func Span(run []entity.Flight) int {
	seen := make(map[string]struct{}, len(run)+1)
	for _, f := range run {
		seen[f.From] = struct{}{}
		seen[f.To] = struct{}{}
	}
	return len(seen)
}

// MaxSpan returns the largest Span among runs, or 0 when there are none.
func MaxSpan(runs [][]entity.Flight) int {
	best := 0
	for _, run := range runs {
		if s := Span(run); s > best {
			best = s
		}
	}
	return best
}
