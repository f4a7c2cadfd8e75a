// Package repository implements database access layer for CampWatch application.
// This file implements the presence log repository for the check-in/out audit trail.
package repository

import (
	"context"

	"github.com/avissapr/campwatch/internal/database"
	"github.com/avissapr/campwatch/internal/models"
)

// PresenceRepository handles read access to the presence audit log.
//
// Immutability Note:
//
//	Log rows are append-only. This application never updates or deletes
//	them; corrections are left to external tooling.
type PresenceRepository struct{}

// NewPresenceRepository creates and returns a new PresenceRepository instance.
//
// Returns:
//   - *PresenceRepository: A new repository instance ready for use
func NewPresenceRepository() *PresenceRepository {
	return &PresenceRepository{}
}

// ListLog retrieves the full presence log in ascending id order.
// Because entries are appended strictly forward in time, id order coincides
// with timestamp order — the log aggregator relies on receiving the events
// this way and performs no sorting of its own.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//
// Returns:
//   - []models.PresenceEvent: All log entries, oldest first (empty slice if none)
//   - error: Database error if the query fails, nil on success
func (r *PresenceRepository) ListLog(ctx context.Context) ([]models.PresenceEvent, error) {
	query := `
		SELECT id, subject_id, presence, logged_at
		FROM presence_log
		ORDER BY id
	`

	rows, err := database.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.PresenceEvent
	for rows.Next() {
		var e models.PresenceEvent
		if err := rows.Scan(&e.ID, &e.SubjectID, &e.Direction, &e.LoggedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}
