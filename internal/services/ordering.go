// Package services provides the business logic layer for the CampWatch
// application: the state-synchronization controller and the pure policies it
// applies (display ordering, membership filtering, log aggregation).
package services

import (
	"sort"
	"strings"

	"github.com/avissapr/campwatch/internal/models"
)

// personLess is the total display order used by every list of persons:
//  1. methodology in its fixed category order (Cub -> Rover)
//  2. surname, case-insensitive
//  3. given name, case-insensitive
//
// Persons equal on all three keys keep their existing relative order
// (SortPersons uses a stable sort).
func personLess(a, b models.Person) bool {
	if a.Methodology != b.Methodology {
		return a.Methodology < b.Methodology
	}

	aSurname := strings.ToLower(a.Surname)
	bSurname := strings.ToLower(b.Surname)
	if aSurname != bSurname {
		return aSurname < bSurname
	}

	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}

// SortPersons sorts persons in place using the display ordering policy.
// The sort is stable so repeated application is idempotent.
func SortPersons(persons []models.Person) {
	sort.SliceStable(persons, func(i, j int) bool {
		return personLess(persons[i], persons[j])
	})
}
