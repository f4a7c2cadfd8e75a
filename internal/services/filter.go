package services

import "github.com/avissapr/campwatch/internal/models"

// FilterNonMembers returns the subset of roster whose ids are absent from
// memberIDs, preserving roster order. Used to populate the "available to add"
// picker for a group.
//
// The function has no hidden state; it is safe to call with a stale member
// set as long as the caller accepts staleness until the next reload.
func FilterNonMembers(roster []models.Person, memberIDs map[int]bool) []models.Person {
	filtered := make([]models.Person, 0, len(roster))
	for _, p := range roster {
		if !memberIDs[p.ID] {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
