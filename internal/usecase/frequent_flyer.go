package usecase

import (
	"sort"

	"github.com/dasmondroy97/Quantexa/internal/domain/entity"
)

// RankFrequentFlyers counts flights per passenger and resolves each passenger
// through the directory. Ids missing from the directory are returned as
// integrity errors; every other passenger is still ranked.
//
// Ranking order is flight count descending, then passenger id ascending.
// Unresolved ids are sorted ascending.
func RankFrequentFlyers(flights []entity.Flight, directory entity.PassengerDirectory) entity.FrequentFlyerRanking {
	counts := make(map[int]int)
	for _, f := range flights {
		counts[f.PassengerID]++
	}

	ranking := entity.FrequentFlyerRanking{
		Ranking: make([]entity.FrequentFlyer, 0, len(counts)),
	}
	for id, count := range counts {
		passenger, ok := directory.Lookup(id)
		if !ok {
			ranking.Unresolved = append(ranking.Unresolved, entity.IntegrityError{
				PassengerID: id,
				FlightCount: count,
			})
			continue
		}
		ranking.Ranking = append(ranking.Ranking, entity.FrequentFlyer{
			Passenger:   passenger,
			FlightCount: count,
		})
	}

	sort.Slice(ranking.Ranking, func(i, j int) bool {
		a, b := ranking.Ranking[i], ranking.Ranking[j]
		if a.FlightCount != b.FlightCount {
			return a.FlightCount > b.FlightCount
		}
		return a.Passenger.ID < b.Passenger.ID
	})
	sort.Slice(ranking.Unresolved, func(i, j int) bool {
		return ranking.Unresolved[i].PassengerID < ranking.Unresolved[j].PassengerID
	})

	return ranking
}
