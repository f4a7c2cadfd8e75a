// Package models defines the domain entities and data transfer objects for CampWatch.
// It includes database models mapped to PostgreSQL tables, form DTOs for mutation
// requests, and view models published to the presentation boundary.
package models

import "time"

// ============================================================================
// Domain Models (Database Entities)
// ============================================================================

// Person represents a member of the organization.
// The controller only ever holds read-only snapshots of Person rows; caches
// are discarded and rebuilt wholesale on every reload, never patched in place.
//
// Database Table: persons
type Person struct {
	ID          int         `db:"id"`          // Primary key, auto-increment
	Name        string      `db:"name"`        // Given name
	Surname     string      `db:"surname"`     // Family name
	RankLevel   RankLevel   `db:"rank_level"`  // Enumerated rank tier (0 = none)
	Methodology Methodology `db:"methodology"` // Age-section category (0..3)
	Presence    Presence    `db:"presence"`    // Current inside/outside flag
}

// Group represents a named set of persons.
// Three categories are distinguished by id convention:
//   - id 1: the reserved all-persons group ("Camp"); membership equals the roster
//   - ids 2..5: methodology groups; membership is implied by Person.Methodology
//   - ids >= 6: user-created groups with explicitly managed membership
//
// Database Table: groups
type Group struct {
	ID   int    `db:"id"`   // Primary key, auto-increment (seeded 1..5)
	Name string `db:"name"` // Display name
}

// GroupWithMembers is a group together with its resolved member list.
// Produced by GroupRepository.ListWithMembers in a single pass so a reload
// never issues per-group member queries.
type GroupWithMembers struct {
	ID      int      // Group id
	Name    string   // Group name
	Members []Person // Resolved members; reload sorts these with the ordering policy
}

// PresenceEvent is one append-only audit record of a presence change.
// Rows are inserted strictly forward in time, so id order coincides with
// timestamp order; the log aggregator relies on that.
//
// Database Table: presence_log
// Immutability: Entries are never updated or deleted by this application.
type PresenceEvent struct {
	ID        int       `db:"id"`         // Primary key, auto-increment
	SubjectID int       `db:"subject_id"` // Person the event refers to
	Direction Presence  `db:"presence"`   // In or Out
	LoggedAt  time.Time `db:"logged_at"`  // UTC timestamp of the change
}

// ============================================================================
// Data Transfer Objects (DTOs) - Mutation Input
// ============================================================================

// AddPersonForm carries raw input for the add-person mutation.
// Rank and methodology arrive as raw integer codes from the boundary and are
// decoded with ParseRankLevel/ParseMethodology before any write occurs.
type AddPersonForm struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	RankCode    int    `json:"rank"`
	Methodology int    `json:"methodology"`
}

// AddGroupForm carries raw input for the add-group mutation.
type AddGroupForm struct {
	Name string `json:"name"`
}

// AddMembershipForm carries raw input for the add-membership mutation.
type AddMembershipForm struct {
	PersonID int `json:"person_id"`
	GroupID  int `json:"group_id"`
}

// ============================================================================
// View Models - Published Projections
// ============================================================================

// PersonRow is the display form of a person, published in the roster,
// per-group lists, presence partitions and the membership picker.
type PersonRow struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Rank        string `json:"rank"`        // Display key, empty for RankNone
	Methodology string `json:"methodology"` // Category display name
}

// GroupView is the display form of a group with its ordered member rows.
type GroupView struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	Members []PersonRow `json:"members"`
}

// LogEntry is one presence change inside the aggregated log, carrying the
// human-readable local-time timestamp attached at aggregation time.
type LogEntry struct {
	PersonID  int    `json:"person_id"`
	Name      string `json:"name"`
	Surname   string `json:"surname"`
	Direction string `json:"direction"` // "In" or "Out"
	Timestamp string `json:"timestamp"` // Local time, "15:04:05"
}

// LogMinute groups consecutive log entries that share a local-time hh:mm.
type LogMinute struct {
	Time    string     `json:"time"` // Local time, "15:04"
	Entries []LogEntry `json:"entries"`
}

// LogDay groups consecutive minutes that share a local-time calendar date.
type LogDay struct {
	Date    string      `json:"date"` // Local date, "2006-01-02"
	Minutes []LogMinute `json:"minutes"`
}

// View converts a Person into its published display row.
func (p Person) View() PersonRow {
	return PersonRow{
		ID:          p.ID,
		Name:        p.Name,
		Surname:     p.Surname,
		Rank:        p.RankLevel.String(),
		Methodology: p.Methodology.String(),
	}
}
