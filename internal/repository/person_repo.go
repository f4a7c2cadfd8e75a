// Package repository implements database access layer for CampWatch application.
// This file handles person records and their presence flag, including the
// store-level consistency writes that accompany both.
package repository

import (
	"context"
	"time"

	"github.com/avissapr/campwatch/internal/database"
	"github.com/avissapr/campwatch/internal/models"
)

// PersonRepository handles person-related database operations.
// Person creation and presence changes are multi-statement writes, so both
// run inside transactions: a person without its reserved-group memberships,
// or a presence flag without its audit entry, must never be observable.
type PersonRepository struct{}

// NewPersonRepository creates a new instance of PersonRepository.
//
// Returns:
//   - *PersonRepository: Initialized repository instance
func NewPersonRepository() *PersonRepository {
	return &PersonRepository{}
}

// Create inserts a new person and the membership rows that every person
// carries: one linking to the all-persons group (id 1) and one linking to
// the methodology group implied by the person's methodology attribute.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - person: Person to insert; RankLevel and Methodology must already be
//     validated enum values. Presence defaults to outside.
//
// Returns:
//   - error: Database error if any statement fails (transaction rolls back),
//     nil on success
//
// Side Effects: Populates person.ID with the database-assigned value
func (r *PersonRepository) Create(ctx context.Context, person *models.Person) error {
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	insertPerson := `
		INSERT INTO persons (name, surname, rank_level, methodology, presence)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err = tx.QueryRow(ctx, insertPerson,
		person.Name,
		person.Surname,
		int(person.RankLevel),
		int(person.Methodology),
		int(models.PresenceOut),
	).Scan(&person.ID)
	if err != nil {
		return err
	}

	insertMembership := `
		INSERT INTO group_members (group_id, person_id)
		VALUES ($1, $2)
	`

	// All-persons group membership
	if _, err := tx.Exec(ctx, insertMembership, 1, person.ID); err != nil {
		return err
	}

	// Implied methodology group membership
	if _, err := tx.Exec(ctx, insertMembership, person.Methodology.GroupID(), person.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// SetPresence updates a person's presence flag and appends the matching
// presence_log entry as one logical write. The flag and its audit trail must
// never diverge, so both statements share a transaction.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - personID: Person whose flag changes
//   - direction: models.PresenceIn or models.PresenceOut
//   - at: UTC timestamp recorded in the log entry
//
// Returns:
//   - error: Database error if either statement fails (transaction rolls
//     back), nil on success
func (r *PersonRepository) SetPresence(ctx context.Context, personID int, direction models.Presence, at time.Time) error {
	tx, err := database.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	updateFlag := `UPDATE persons SET presence = $2 WHERE id = $1`
	if _, err := tx.Exec(ctx, updateFlag, personID, int(direction)); err != nil {
		return err
	}

	appendLog := `
		INSERT INTO presence_log (subject_id, presence, logged_at)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.Exec(ctx, appendLog, personID, int(direction), at.UTC()); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
