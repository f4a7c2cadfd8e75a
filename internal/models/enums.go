// Package models defines the domain entities and data transfer objects for CampWatch.
// This file declares the enumerated codes used by the persistence layer and the
// checked decode functions that turn raw integers from the presentation boundary
// into valid enum values.
package models

import "errors"

// Decode errors returned when a raw code does not map to a known enum value.
// Handlers must reject the request before any write occurs.
var (
	ErrUnknownRank        = errors.New("unknown rank level code")
	ErrUnknownMethodology = errors.New("unknown methodology code")
	ErrUnknownPresence    = errors.New("unknown presence code")
)

// RankLevel is a person's rank tier as stored in persons.rank_level.
// Zero is the explicit "no rank" value; the first four tiers are gendered.
//
// Database Column: persons.rank_level (int)
type RankLevel int

// Rank level codes. The numeric values are part of the storage format and
// must not be reordered.
const (
	RankNone RankLevel = iota
	RankFirstM
	RankFirstF
	RankSecondM
	RankSecondF
	RankThirdM
	RankThirdF
	RankFourthM
	RankFourthF
	RankFifth
	RankSixth
)

// ParseRankLevel decodes a raw integer code into a RankLevel.
// Returns ErrUnknownRank for any code outside the known range, so callers
// can reject invalid input before touching the database.
func ParseRankLevel(code int) (RankLevel, error) {
	if code < int(RankNone) || code > int(RankSixth) {
		return RankNone, ErrUnknownRank
	}
	return RankLevel(code), nil
}

// String returns the stable display key for the rank level.
// RankNone renders as an empty string by convention.
func (r RankLevel) String() string {
	switch r {
	case RankFirstM:
		return "RANK_FIRST_MALE"
	case RankFirstF:
		return "RANK_FIRST_FEMALE"
	case RankSecondM:
		return "RANK_SECOND_MALE"
	case RankSecondF:
		return "RANK_SECOND_FEMALE"
	case RankThirdM:
		return "RANK_THIRD_MALE"
	case RankThirdF:
		return "RANK_THIRD_FEMALE"
	case RankFourthM:
		return "RANK_FOURTH_MALE"
	case RankFourthF:
		return "RANK_FOURTH_FEMALE"
	case RankFifth:
		return "RANK_FIFTH"
	case RankSixth:
		return "RANK_SIXTH"
	default:
		return ""
	}
}

// Methodology is one of the four fixed age-section categories a person
// belongs to. The category doubles as an implicit group: every person is a
// member of the methodology group whose id is code + 2.
//
// Database Column: persons.methodology (int)
type Methodology int

// Methodology codes in their fixed category order (used by the ordering policy).
const (
	MethodologyCub Methodology = iota
	MethodologyScout
	MethodologyVentureScout
	MethodologyRover
)

// ParseMethodology decodes a raw integer code into a Methodology.
// Returns ErrUnknownMethodology for codes outside 0..3.
func ParseMethodology(code int) (Methodology, error) {
	if code < int(MethodologyCub) || code > int(MethodologyRover) {
		return MethodologyCub, ErrUnknownMethodology
	}
	return Methodology(code), nil
}

// String returns the methodology display name, matching the seeded group names.
func (m Methodology) String() string {
	switch m {
	case MethodologyCub:
		return "Cub"
	case MethodologyScout:
		return "Scout"
	case MethodologyVentureScout:
		return "Venture Scout"
	case MethodologyRover:
		return "Rover"
	default:
		return ""
	}
}

// GroupID returns the id of the reserved methodology group implied by m.
// Group ids start at 1 (the all-persons group), so methodology groups
// occupy ids 2..5.
func (m Methodology) GroupID() int {
	return int(m) + 2
}

// Presence is a person's inside/outside state. The same code is recorded as
// the direction of each presence_log entry: an In entry sets the flag to
// PresenceIn, an Out entry to PresenceOut.
//
// Database Columns: persons.presence, presence_log.presence (int)
type Presence int

// Presence codes.
const (
	PresenceOut Presence = 0
	PresenceIn  Presence = 1
)

// ParsePresence decodes a raw integer code into a Presence value.
func ParsePresence(code int) (Presence, error) {
	switch Presence(code) {
	case PresenceOut, PresenceIn:
		return Presence(code), nil
	default:
		return PresenceOut, ErrUnknownPresence
	}
}

// String returns "In" or "Out" for display and logging.
func (p Presence) String() string {
	if p == PresenceIn {
		return "In"
	}
	return "Out"
}
