package services

import (
	"time"

	"github.com/avissapr/campwatch/internal/models"
)

// AggregateLog groups a chronologically ordered sequence of presence events
// into the nested Day -> Minute -> Entries structure published to the
// presentation boundary.
//
// Grouping is a single forward pass with an open day and minute accumulator:
// an event opens a new day group when its local-time calendar date differs
// from the open day (which also closes the open minute), and a new minute
// group when its local-time hh:mm differs from the open minute. Input order
// is preserved throughout and empty groups are never emitted.
//
// Events whose subject id is missing from roster are dropped rather than
// failing the aggregation (e.g. a person later removed from the roster).
//
// Timestamps are stored in UTC; conversion to loc happens here, for both the
// grouping keys and the per-entry display timestamp.
//
// The input is trusted to be time-ordered (the store returns it in id order,
// which coincides with timestamp order). Out-of-order input produces
// fragmented, non-contiguous groups rather than a sort-corrected result.
func AggregateLog(events []models.PresenceEvent, roster map[int]models.Person, loc *time.Location) []models.LogDay {
	if loc == nil {
		loc = time.Local
	}

	var days []models.LogDay

	for _, e := range events {
		person, ok := roster[e.SubjectID]
		if !ok {
			continue
		}

		local := e.LoggedAt.In(loc)
		dayKey := local.Format("2006-01-02")
		minuteKey := local.Format("15:04")

		entry := models.LogEntry{
			PersonID:  person.ID,
			Name:      person.Name,
			Surname:   person.Surname,
			Direction: e.Direction.String(),
			Timestamp: local.Format("15:04:05"),
		}

		if len(days) == 0 || days[len(days)-1].Date != dayKey {
			days = append(days, models.LogDay{Date: dayKey})
		}
		day := &days[len(days)-1]

		if len(day.Minutes) == 0 || day.Minutes[len(day.Minutes)-1].Time != minuteKey {
			day.Minutes = append(day.Minutes, models.LogMinute{Time: minuteKey})
		}
		minute := &day.Minutes[len(day.Minutes)-1]

		minute.Entries = append(minute.Entries, entry)
	}

	return days
}
