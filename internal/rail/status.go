package rail

import (
	"fmt"
	"time"

	"railscope.indrail.org/internal/timetable"
)

// Live status states. Expected arrivals render as "Expected in N min".
const (
	StatusDeparted  = "Departed"
	StatusAtStation = "At station"
	StatusUnknown   = "Unknown"
)

// ResolveStatus derives the live state of a train at one stop. Adjusted
// times are the scheduled times shifted by the train's current delay.
//
// Precedence: past the adjusted departure means Departed; within the
// adjusted window means At station; before the adjusted arrival means
// Expected in N whole minutes. Unknown is the defined fallback for
// timestamps that violate arrival <= departure ordering; it is not an
// error.
//
// Pure function of its arguments; safe to call concurrently.
func ResolveStatus(entry timetable.Entry, delayMin int, now time.Time) (adjustedArrival, adjustedDeparture time.Time, status string) {
	adjustedArrival = entry.Arrival.Add(time.Duration(delayMin) * time.Minute)
	adjustedDeparture = entry.Departure.Add(time.Duration(delayMin) * time.Minute)

	switch {
	case now.After(adjustedDeparture):
		status = StatusDeparted
	case !now.Before(adjustedArrival) && !now.After(adjustedDeparture):
		status = StatusAtStation
	case now.Before(adjustedArrival):
		minutesLeft := int(adjustedArrival.Sub(now).Seconds()) / 60
		status = fmt.Sprintf("Expected in %d min", minutesLeft)
	default:
		status = StatusUnknown
	}
	return adjustedArrival, adjustedDeparture, status
}
