package usecase

import (
	"time"

	"github.com/dasmondroy97/Quantexa/internal/domain/entity"
)

// baseDate is a fixed reference so every fixture is deterministic.
var baseDate = time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC)

// day returns baseDate advanced by n days.
func day(n int) time.Time {
	return baseDate.AddDate(0, 0, n)
}

func leg(passengerID, flightID int, from, to string, date time.Time) entity.Flight {
	return entity.Flight{
		PassengerID: passengerID,
		FlightID:    flightID,
		From:        from,
		To:          to,
		Date:        date,
	}
}

// trip builds one passenger's flights from "from>to" hops, one day apart.
func trip(passengerID int, hops ...string) []entity.Flight {
	flights := make([]entity.Flight, 0, len(hops))
	for i, hop := range hops {
		var from, to string
		for j := 0; j < len(hop); j++ {
			if hop[j] == '>' {
				from, to = hop[:j], hop[j+1:]
				break
			}
		}
		flights = append(flights, leg(passengerID, passengerID*100+i, from, to, day(i)))
	}
	return flights
}

func totalMonthly(counts []entity.MonthlyCount) int {
	total := 0
	for _, c := range counts {
		total += c.Count
	}
	return total
}
