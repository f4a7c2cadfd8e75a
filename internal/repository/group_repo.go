// Package repository implements database access layer for CampWatch application.
// This file handles group management and group-person membership relationships.
package repository

import (
	"context"
	"sort"

	"github.com/avissapr/campwatch/internal/database"
	"github.com/avissapr/campwatch/internal/models"
)

// GroupRepository handles group-related database operations.
// Manages the reserved groups (all-persons, methodology) and user-created
// groups along with their person memberships.
type GroupRepository struct{}

// NewGroupRepository creates a new instance of GroupRepository.
//
// Returns:
//   - *GroupRepository: Initialized repository instance
func NewGroupRepository() *GroupRepository {
	return &GroupRepository{}
}

// ListWithMembers retrieves every group with its fully resolved member list.
// This is the single authoritative read used by the reload algorithm; it runs
// exactly two queries regardless of group count, avoiding N+1 member lookups.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//
// Returns:
//   - []models.GroupWithMembers: All groups ordered by id ascending
//   - error: Database error if either query fails, nil on success
//
// Ordering:
//   - Groups come back sorted by id, which puts the all-persons group first,
//     methodology groups next, and user groups last in a stable order.
//   - Member lists are in arbitrary database order; the caller applies the
//     display ordering policy.
func (r *GroupRepository) ListWithMembers(ctx context.Context) ([]models.GroupWithMembers, error) {
	groupQuery := `SELECT id, name FROM groups ORDER BY id`

	rows, err := database.DB.Query(ctx, groupQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.GroupWithMembers
	index := make(map[int]int) // group id -> position in groups
	for rows.Next() {
		var g models.GroupWithMembers
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		index[g.ID] = len(groups)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	memberQuery := `
		SELECT gm.group_id, p.id, p.name, p.surname, p.rank_level, p.methodology, p.presence
		FROM group_members gm
		JOIN persons p ON gm.person_id = p.id
	`

	memberRows, err := database.DB.Query(ctx, memberQuery)
	if err != nil {
		return nil, err
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var groupID int
		var p models.Person
		if err := memberRows.Scan(
			&groupID,
			&p.ID,
			&p.Name,
			&p.Surname,
			&p.RankLevel,
			&p.Methodology,
			&p.Presence,
		); err != nil {
			return nil, err
		}

		// Membership rows for unknown groups are skipped rather than failing
		// the whole load (cascade deletes make them transient at worst).
		if pos, ok := index[groupID]; ok {
			groups[pos].Members = append(groups[pos].Members, p)
		}
	}
	if err := memberRows.Err(); err != nil {
		return nil, err
	}

	// The group query already orders by id; keep the guarantee explicit even
	// if the query changes.
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].ID < groups[j].ID })

	return groups, nil
}

// Create inserts a new user-created group into the database.
// The id sequence starts past the reserved range, so new groups always get
// ids >= 6 and never collide with the seeded groups.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - group: Group struct containing the name; ID is populated on success
//
// Returns:
//   - error: Database error if insertion fails, nil on success
//
// Side Effects: Populates group.ID with the database-assigned value
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	query := `
		INSERT INTO groups (name)
		VALUES ($1)
		RETURNING id
	`

	return database.DB.QueryRow(ctx, query, group.Name).Scan(&group.ID)
}

// MemberExists reports whether a (group, person) membership row already exists.
// The add-membership handler uses this to reject duplicates before writing,
// so the duplicate case surfaces as a domain error rather than a constraint
// violation.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - groupID: Group side of the relation
//   - personID: Person side of the relation
//
// Returns:
//   - bool: true if the membership row exists
//   - error: Database error if the query fails, nil on success
func (r *GroupRepository) MemberExists(ctx context.Context, groupID, personID int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM group_members
			WHERE group_id = $1 AND person_id = $2
		)
	`

	var exists bool
	err := database.DB.QueryRow(ctx, query, groupID, personID).Scan(&exists)
	return exists, err
}

// AddMember inserts a membership row linking a person to a group.
// Callers are expected to check MemberExists first; a duplicate insert fails
// on the primary key constraint.
//
// Parameters:
//   - ctx: Context for cancellation and timeout control
//   - groupID: Group to add the person to
//   - personID: Person to add
//
// Returns:
//   - error: Database error if insertion fails, nil on success
func (r *GroupRepository) AddMember(ctx context.Context, groupID, personID int) error {
	query := `
		INSERT INTO group_members (group_id, person_id)
		VALUES ($1, $2)
	`

	_, err := database.DB.Exec(ctx, query, groupID, personID)
	return err
}
