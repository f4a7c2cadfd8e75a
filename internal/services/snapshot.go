package services

import "github.com/avissapr/campwatch/internal/models"

// Snapshot is the full set of projections the controller publishes after each
// reload or selection change. It is an immutable value from the consumer's
// point of view: the controller never mutates a snapshot after publishing it,
// it builds and publishes a fresh one instead.
//
// InsideSelected and OutsideSelected are parallel to Inside and Outside so
// the presentation layer can zip markers with rows positionally.
type Snapshot struct {
	Roster          []models.PersonRow `json:"roster"`
	Groups          []models.GroupView `json:"groups"`
	UserGroupNames  []string           `json:"user_group_names"`
	Inside          []models.PersonRow `json:"inside"`
	InsideSelected  []bool             `json:"inside_selected"`
	Outside         []models.PersonRow `json:"outside"`
	OutsideSelected []bool             `json:"outside_selected"`
	Picker          []models.PersonRow `json:"picker"`
	Log             []models.LogDay    `json:"log"`
}

// Publisher receives every snapshot the controller builds.
// The HTTP adapter is the production implementation; tests use a recording
// fake. Publish is called synchronously from the controller's thread.
type Publisher interface {
	Publish(*Snapshot)
}
