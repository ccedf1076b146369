package usecase

import (
	"time"

	"github.com/dasmondroy97/Quantexa/internal/domain/entity"
)

// CountFlightsByMonth counts flights per calendar month number. Years are
// ignored, so the same month of different years is merged. Only months with
// at least one flight are returned, in ascending month order.
func CountFlightsByMonth(flights []entity.Flight) []entity.MonthlyCount {
	var counts [13]int
	for _, f := range flights {
		counts[f.Date.Month()]++
	}

	result := make([]entity.MonthlyCount, 0, 12)
	for m := time.January; m <= time.December; m++ {
		if counts[m] > 0 {
			result = append(result, entity.MonthlyCount{Month: m, Count: counts[m]})
		}
	}
	return result
}
