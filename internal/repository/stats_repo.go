// Package repository implements database access layer for CampWatch application.
// This file provides statistical aggregation queries for the status endpoint.
package repository

import (
	"context"

	"github.com/avissapr/campwatch/internal/database"
)

// StatsRepository handles statistical queries over the roster and the
// presence log. These aggregates are informational only; none of the derived
// caches depend on them.
type StatsRepository struct{}

// NewStatsRepository creates a new instance of StatsRepository.
//
// Returns:
//   - *StatsRepository: Initialized repository instance
func NewStatsRepository() *StatsRepository {
	return &StatsRepository{}
}

// RosterStats represents aggregated headcounts for the status display.
type RosterStats struct {
	TotalPersons  int // Total number of persons in the roster
	InsideCount   int // Persons whose presence flag is inside
	OutsideCount  int // Persons whose presence flag is outside
	CubCount      int // Persons per methodology category
	ScoutCount    int
	VentureCount  int
	RoverCount    int
	LogEntryCount int // Total presence_log rows ever recorded
}

// GetRosterStats retrieves aggregated roster and log statistics.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//
// Returns:
//   - *RosterStats: Aggregated statistics, nil if error
//   - error: Database error if query fails, nil on success
//
// Database: Single query with CASE aggregations over persons plus a
// subquery count over presence_log.
func (r *StatsRepository) GetRosterStats(ctx context.Context) (*RosterStats, error) {
	query := `
		SELECT
			COUNT(p.id) as total_persons,
			COUNT(CASE WHEN p.presence = 1 THEN 1 END) as inside_count,
			COUNT(CASE WHEN p.presence = 0 THEN 1 END) as outside_count,
			COUNT(CASE WHEN p.methodology = 0 THEN 1 END) as cub_count,
			COUNT(CASE WHEN p.methodology = 1 THEN 1 END) as scout_count,
			COUNT(CASE WHEN p.methodology = 2 THEN 1 END) as venture_count,
			COUNT(CASE WHEN p.methodology = 3 THEN 1 END) as rover_count,
			(SELECT COUNT(id) FROM presence_log) as log_entry_count
		FROM persons p
	`

	stats := &RosterStats{}
	row := database.DB.QueryRow(ctx, query)

	err := row.Scan(
		&stats.TotalPersons,
		&stats.InsideCount,
		&stats.OutsideCount,
		&stats.CubCount,
		&stats.ScoutCount,
		&stats.VentureCount,
		&stats.RoverCount,
		&stats.LogEntryCount,
	)

	if err != nil {
		return nil, err
	}

	return stats, nil
}
