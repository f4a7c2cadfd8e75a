package services_test

import (
	"testing"
	"time"

	"github.com/avissapr/campwatch/internal/models"
	"github.com/avissapr/campwatch/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rosterLookup builds the subject-id lookup the aggregator consumes.
func rosterLookup(persons ...models.Person) map[int]models.Person {
	lookup := make(map[int]models.Person, len(persons))
	for _, p := range persons {
		lookup[p.ID] = p
	}
	return lookup
}

// TestAggregateLog_MinuteGrouping verifies the canonical grouping case:
// three same-day events across two minutes yield one day group with two
// minute groups, entries keeping their original relative order.
func TestAggregateLog_MinuteGrouping(t *testing.T) {
	roster := rosterLookup(
		models.Person{ID: 1, Name: "Ala", Surname: "Bor"},
		models.Person{ID: 2, Name: "Ela", Surname: "Cis"},
		models.Person{ID: 3, Name: "Ola", Surname: "Dab"},
	)
	events := []models.PresenceEvent{
		{ID: 1, SubjectID: 1, Direction: models.PresenceIn, LoggedAt: time.Date(2025, 6, 1, 10, 0, 5, 0, time.UTC)},
		{ID: 2, SubjectID: 2, Direction: models.PresenceIn, LoggedAt: time.Date(2025, 6, 1, 10, 0, 40, 0, time.UTC)},
		{ID: 3, SubjectID: 3, Direction: models.PresenceIn, LoggedAt: time.Date(2025, 6, 1, 10, 1, 0, 0, time.UTC)},
	}

	days := services.AggregateLog(events, roster, time.UTC)

	require.Len(t, days, 1)
	assert.Equal(t, "2025-06-01", days[0].Date)

	require.Len(t, days[0].Minutes, 2)
	assert.Equal(t, "10:00", days[0].Minutes[0].Time)
	assert.Equal(t, "10:01", days[0].Minutes[1].Time)

	require.Len(t, days[0].Minutes[0].Entries, 2)
	assert.Equal(t, 1, days[0].Minutes[0].Entries[0].PersonID)
	assert.Equal(t, 2, days[0].Minutes[0].Entries[1].PersonID)

	require.Len(t, days[0].Minutes[1].Entries, 1)
	assert.Equal(t, 3, days[0].Minutes[1].Entries[0].PersonID)
	assert.Equal(t, "10:01:00", days[0].Minutes[1].Entries[0].Timestamp)
}

// TestAggregateLog_DayBoundary verifies that a date change opens a new day
// group and force-closes the open minute, even when the wall-clock minute
// string happens to repeat across days.
func TestAggregateLog_DayBoundary(t *testing.T) {
	roster := rosterLookup(models.Person{ID: 1, Name: "Ala", Surname: "Bor"})
	events := []models.PresenceEvent{
		{ID: 1, SubjectID: 1, Direction: models.PresenceIn, LoggedAt: time.Date(2025, 6, 1, 23, 59, 10, 0, time.UTC)},
		{ID: 2, SubjectID: 1, Direction: models.PresenceOut, LoggedAt: time.Date(2025, 6, 2, 23, 59, 30, 0, time.UTC)},
	}

	days := services.AggregateLog(events, roster, time.UTC)

	require.Len(t, days, 2)
	assert.Equal(t, "2025-06-01", days[0].Date)
	assert.Equal(t, "2025-06-02", days[1].Date)
	require.Len(t, days[0].Minutes, 1)
	require.Len(t, days[1].Minutes, 1)
	assert.Equal(t, "In", days[0].Minutes[0].Entries[0].Direction)
	assert.Equal(t, "Out", days[1].Minutes[0].Entries[0].Direction)
}

// TestAggregateLog_LocalTimeConversion verifies that grouping keys and entry
// timestamps use the display timezone, not UTC. An event at 23:30 UTC falls
// on the next calendar day two hours east.
func TestAggregateLog_LocalTimeConversion(t *testing.T) {
	roster := rosterLookup(models.Person{ID: 1, Name: "Ala", Surname: "Bor"})
	events := []models.PresenceEvent{
		{ID: 1, SubjectID: 1, Direction: models.PresenceIn, LoggedAt: time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)},
	}

	east := time.FixedZone("UTC+2", 2*60*60)
	days := services.AggregateLog(events, roster, east)

	require.Len(t, days, 1)
	assert.Equal(t, "2025-06-02", days[0].Date)
	assert.Equal(t, "01:30", days[0].Minutes[0].Time)
	assert.Equal(t, "01:30:00", days[0].Minutes[0].Entries[0].Timestamp)
}

// TestAggregateLog_UnknownSubjectDropped verifies that events referencing a
// subject absent from the roster lookup are excluded without failing, and
// that groups they would have occupied alone are never emitted.
func TestAggregateLog_UnknownSubjectDropped(t *testing.T) {
	roster := rosterLookup(models.Person{ID: 1, Name: "Ala", Surname: "Bor"})
	events := []models.PresenceEvent{
		{ID: 1, SubjectID: 99, Direction: models.PresenceIn, LoggedAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)},
		{ID: 2, SubjectID: 1, Direction: models.PresenceIn, LoggedAt: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)},
	}

	days := services.AggregateLog(events, roster, time.UTC)

	require.Len(t, days, 1)
	require.Len(t, days[0].Minutes, 1)
	assert.Equal(t, "10:00", days[0].Minutes[0].Time)
	require.Len(t, days[0].Minutes[0].Entries, 1)
	assert.Equal(t, 1, days[0].Minutes[0].Entries[0].PersonID)
}

// TestAggregateLog_Empty verifies no groups are emitted for an empty log.
func TestAggregateLog_Empty(t *testing.T) {
	days := services.AggregateLog(nil, map[int]models.Person{}, time.UTC)
	assert.Empty(t, days)
}
