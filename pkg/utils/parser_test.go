package utils

import (
	"testing"
	"time"

	"github.com/dasmondroy97/Quantexa/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var passengersCSV = []byte(`passengerId,firstName,lastName
14751,Napoleon,Gaylene
2359,Katherin,Shanell
abc,Bad,Id
5, ,Blank
7,Too,Many,Fields
`)

var flightsCSV = []byte(`passengerId,flightId,from,to,date
48,0,cg,ir,01-01-17
94,0,cg,ir,01-01-17
82,1,ir,uk,12-02-17
x,1,ir,uk,12-02-17
82,y,ir,uk,12-02-17
82,2,ir,,12-02-17
82,3,ir,uk,2017-02-12
82,4,ir,uk,31-02-17
82,5,fr,fr,09-12-99
`)

func newTestParser() *RecordParser {
	return NewRecordParser(logger.NewNopLogger())
}

func TestParseFlightDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{name: "two digit year", value: "01-01-17", want: time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)},
		{name: "late year stays in 2000s", value: "15-06-99", want: time.Date(2099, 6, 15, 0, 0, 0, 0, time.UTC)},
		{name: "single digit day and month", value: "5-3-18", want: time.Date(2018, 3, 5, 0, 0, 0, 0, time.UTC)},
		{name: "four digit year rejected", value: "01-01-2017", wantErr: true},
		{name: "iso date rejected", value: "2017-01-01", wantErr: true},
		{name: "impossible day", value: "31-02-17", wantErr: true},
		{name: "garbage", value: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFlightDate(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParsePassenger(t *testing.T) {
	p := newTestParser()

	got, err := p.ParsePassenger([]string{" 12 ", "Ada", "Lovelace"})
	require.NoError(t, err)
	assert.Equal(t, 12, got.ID)
	assert.Equal(t, "Ada Lovelace", got.FullName())

	_, err = p.ParsePassenger([]string{"12", "Ada"})
	assert.ErrorContains(t, err, "expected 3 fields")

	_, err = p.ParsePassenger([]string{"12", "", "Lovelace"})
	assert.ErrorContains(t, err, "firstName")

	_, err = p.ParsePassenger([]string{"twelve", "Ada", "Lovelace"})
	assert.ErrorContains(t, err, "passengerId")
}

func TestParseFlight_AllowsSameEndpoints(t *testing.T) {
	p := newTestParser()

	got, err := p.ParseFlight([]string{"1", "2", "uk", "uk", "03-04-17"})
	require.NoError(t, err)
	assert.Equal(t, "uk", got.From)
	assert.Equal(t, "uk", got.To)
	assert.Equal(t, time.April, got.Date.Month())
}

func TestParsePassengers_DropsBadRows(t *testing.T) {
	batch := newTestParser().ParsePassengers(passengersCSV)

	require.Len(t, batch.Passengers, 2)
	assert.Equal(t, 14751, batch.Passengers[0].ID)
	assert.Equal(t, 2359, batch.Passengers[1].ID)

	require.Len(t, batch.Rejects, 3)
	assert.Equal(t, 4, batch.Rejects[0].Line)
	assert.Equal(t, "passengers", batch.Rejects[0].Dataset)
	assert.Contains(t, batch.Rejects[1].Reason, "firstName")
	assert.Contains(t, batch.Rejects[2].Reason, "expected 3 fields")
}

func TestParseFlights_DropsBadRows(t *testing.T) {
	batch := newTestParser().ParseFlights(flightsCSV)

	require.Len(t, batch.Flights, 4)
	assert.Equal(t, 48, batch.Flights[0].PassengerID)
	assert.Equal(t, 2099, batch.Flights[3].Date.Year())

	require.Len(t, batch.Rejects, 5)
	lines := make([]int, 0, len(batch.Rejects))
	for _, r := range batch.Rejects {
		lines = append(lines, r.Line)
	}
	assert.Equal(t, []int{5, 6, 7, 8, 9}, lines)
}

func TestParseFlights_EmptyInput(t *testing.T) {
	batch := newTestParser().ParseFlights(nil)
	assert.Empty(t, batch.Flights)
	assert.Empty(t, batch.Rejects)
}
