package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dasmondroy97/Quantexa/internal/domain/entity"
	"github.com/dasmondroy97/Quantexa/internal/infrastructure/config"
	"github.com/dasmondroy97/Quantexa/pkg/utils"
)

// ConsoleReporter renders an analytics report. Every section is cut to
// limit rows; warnings are never cut.
type ConsoleReporter struct {
	out    io.Writer
	format string
	limit  int
}

// NewConsoleReporter creates a reporter for one of the config formats. A
// limit of 0 prints every row.
func NewConsoleReporter(out io.Writer, format string, limit int) *ConsoleReporter {
	return &ConsoleReporter{
		out:    out,
		format: format,
		limit:  limit,
	}
}

// Write renders report in the configured format
func (r *ConsoleReporter) Write(report *entity.AnalyticsReport) error {
	switch r.format {
	case config.FormatJSON:
		return r.writeJSON(report)
	case config.FormatText, "":
		return r.writeText(report)
	default:
		return fmt.Errorf("unknown report format %q", r.format)
	}
}

func (r *ConsoleReporter) writeJSON(report *entity.AnalyticsReport) error {
	truncated := *report
	truncated.Monthly = truncate(report.Monthly, r.limit)
	truncated.FrequentFlyers.Ranking = truncate(report.FrequentFlyers.Ranking, r.limit)
	truncated.LongestRuns = truncate(report.LongestRuns, r.limit)
	truncated.CoTravelPairs = truncate(report.CoTravelPairs, r.limit)

	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(truncated)
}

func (r *ConsoleReporter) writeText(report *entity.AnalyticsReport) error {
	w := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "Flight analytics report %s (generated %s)\n", report.RunID, report.GeneratedAt.Format(time.RFC3339))

	section(w, "Flights per month", "Month\tNumber of Flights")
	for _, m := range truncate(report.Monthly, r.limit) {
		fmt.Fprintf(w, "%d\t%d\n", int(m.Month), m.Count)
	}

	section(w, "Most frequent flyers", "Passenger ID\tNumber of Flights\tFirst name\tLast name")
	for _, ff := range truncate(report.FrequentFlyers.Ranking, r.limit) {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", ff.Passenger.ID, ff.FlightCount, ff.Passenger.FirstName, ff.Passenger.LastName)
	}

	section(w, fmt.Sprintf("Longest run without visiting %s", report.Hub), "Passenger ID\tLongest Run")
	for _, run := range truncate(report.LongestRuns, r.limit) {
		fmt.Fprintf(w, "%d\t%d\n", run.PassengerID, run.Span)
	}

	section(w, fmt.Sprintf("Passengers with at least %d flights together", report.CoTravelMin),
		"Passenger 1 ID\tPassenger 2 ID\tNumber of flights together")
	for _, pair := range truncate(report.CoTravelPairs, r.limit) {
		fmt.Fprintf(w, "%d\t%d\t%d\n", pair.PassengerA, pair.PassengerB, pair.FlightCount)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	return r.writeWarnings(report)
}

func (r *ConsoleReporter) writeWarnings(report *entity.AnalyticsReport) error {
	total := len(report.Warnings) + len(report.FrequentFlyers.Unresolved)
	if total == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(r.out, "\nWarnings (%d)\n", total); err != nil {
		return err
	}
	for _, warning := range report.Warnings {
		if _, err := fmt.Fprintf(r.out, "- %s\n", describeRowError(warning)); err != nil {
			return err
		}
	}
	for _, ie := range report.FrequentFlyers.Unresolved {
		if _, err := fmt.Fprintf(r.out, "- %s\n", ie.Error()); err != nil {
			return err
		}
	}
	return nil
}

func describeRowError(e entity.RowError) string {
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Dataset, e.Reason)
	}
	return e.Error()
}

func section(w io.Writer, title, header string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, header)
}

func truncate[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

// DateWindow renders the co-travel window for log lines
func DateWindow(from, to time.Time) string {
	format := func(t time.Time, open string) string {
		if t.IsZero() {
			return open
		}
		return t.Format(utils.DISPLAY_DATE_LAYOUT)
	}
	return fmt.Sprintf("[%s, %s]", format(from, "-inf"), format(to, "+inf"))
}
