package utils

// Field counts of the two tabular sources
const (
	PassengerFieldCount = 3
	FlightFieldCount    = 5
)

// Date layouts
const (
	// DATE_LAYOUT is the source date once its two-digit year is expanded
	DATE_LAYOUT = "2-1-2006"
	// DISPLAY_DATE_LAYOUT is used by the reporter and the config
	DISPLAY_DATE_LAYOUT = "2006-01-02"
	// CENTURY is added to every two-digit source year
	CENTURY = 2000
)
