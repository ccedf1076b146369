// internal/domain/entity/analytics.go
package entity

import "time"

// MonthlyCount is the number of flights in a calendar month, any year.
type MonthlyCount struct {
	Month time.Month `json:"month"`
	Count int        `json:"count"`
}

// FrequentFlyer pairs a resolved passenger with their flight count.
type FrequentFlyer struct {
	Passenger   Passenger `json:"passenger"`
	FlightCount int       `json:"flightCount"`
}

// FrequentFlyerRanking holds the ranked passengers and the groups whose
// passenger id could not be resolved.
type FrequentFlyerRanking struct {
	Ranking    []FrequentFlyer  `json:"ranking"`
	Unresolved []IntegrityError `json:"unresolved,omitempty"`
}

// LongestRun is the largest number of distinct locations a passenger
// visited between two hub-touching flights.
type LongestRun struct {
	PassengerID int `json:"passengerId"`
	Span        int `json:"span"`
}

// CoTravelPair counts the flights two passengers shared. PassengerA < PassengerB.
type CoTravelPair struct {
	PassengerA  int `json:"passengerA"`
	PassengerB  int `json:"passengerB"`
	FlightCount int `json:"flightCount"`
}

// AnalyticsReport bundles the output of a complete analytics run.
type AnalyticsReport struct {
	RunID          string               `json:"runId"`
	GeneratedAt    time.Time            `json:"generatedAt"`
	Hub            string               `json:"hub"`
	CoTravelMin    int                  `json:"coTravelMin"`
	Monthly        []MonthlyCount       `json:"monthly"`
	FrequentFlyers FrequentFlyerRanking `json:"frequentFlyers"`
	LongestRuns    []LongestRun         `json:"longestRuns"`
	CoTravelPairs  []CoTravelPair       `json:"coTravelPairs"`
	Warnings       []RowError           `json:"warnings,omitempty"`
}
