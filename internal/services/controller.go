package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avissapr/campwatch/internal/models"
	"github.com/avissapr/campwatch/internal/repository"
)

// Group id conventions enforced by the seed data:
// id 1 is the all-persons group whose member list is the authoritative
// roster, ids 2..5 are the methodology groups, and ids from 6 upward are
// user-managed groups.
const (
	allPersonsGroupID = 1
	firstUserGroupID  = 6
)

// Domain errors surfaced by the mutation handlers. Each is rejected before
// any write occurs, so a caller receiving one knows storage is unchanged.
var (
	ErrDuplicateMembership = errors.New("person is already a member of this group")
	ErrUnknownGroup        = errors.New("unknown group id")
)

// Controller is the state-synchronization core. It exclusively owns every
// derived cache (roster, per-group lists, membership index, presence
// partitions, transient selection set, aggregated log) and keeps them
// coherent by rebuilding all of them from storage on every reload rather
// than patching incrementally.
//
// Controller is NOT safe for concurrent use. The design assumes a single
// event-driven caller: every handler and Reload runs to completion before
// the next event is processed. The HTTP adapter serializes access with a
// mutex; nothing else may touch the caches or issue store calls on the
// controller's behalf.
type Controller struct {
	groupRepo    *repository.GroupRepository
	personRepo   *repository.PersonRepository
	presenceRepo *repository.PresenceRepository

	pub Publisher
	loc *time.Location

	// Derived caches. All of them are replaced wholesale by Reload; none is
	// ever mutated in place. The transient selection set is the one piece of
	// state that deliberately survives reloads: a reload must not silently
	// clear a user's in-progress selection.
	groups      []models.GroupWithMembers // all groups, id ascending, members sorted
	roster      []models.Person           // members of the all-persons group, sorted
	userGroups  []models.GroupWithMembers // groups with id >= firstUserGroupID
	memberIndex map[int]map[int]bool      // group id -> member person-id set
	logDays     []models.LogDay           // aggregated presence log
	selection   map[int]bool              // transient checked set, person ids
	activeGroup int                       // index into userGroups for the picker; -1 when none

	current *Snapshot // last published snapshot, kept for read access
}

// NewController creates a controller wired to the given publisher.
// loc is the timezone used for log display grouping; nil means local time.
// All caches start empty; call Reload once at startup to populate them.
func NewController(pub Publisher, loc *time.Location) *Controller {
	if loc == nil {
		loc = time.Local
	}
	return &Controller{
		groupRepo:    repository.NewGroupRepository(),
		personRepo:   repository.NewPersonRepository(),
		presenceRepo: repository.NewPresenceRepository(),
		pub:          pub,
		loc:          loc,
		memberIndex:  make(map[int]map[int]bool),
		selection:    make(map[int]bool),
		activeGroup:  -1,
	}
}

// Current returns the last published snapshot, or nil before the first
// successful reload.
func (c *Controller) Current() *Snapshot {
	return c.current
}

// Reload rebuilds every derived cache from storage and publishes a fresh
// snapshot. It is idempotent and performs no writes: calling it twice with
// no intervening mutation publishes identical projections.
//
// All store reads happen before any cache is replaced. If a read fails, the
// previously published projections stay untouched and the error is returned;
// no partial state is ever observable.
func (c *Controller) Reload(ctx context.Context) error {
	// Single-pass read of all groups with resolved member lists.
	groups, err := c.groupRepo.ListWithMembers(ctx)
	if err != nil {
		return fmt.Errorf("reload: loading groups: %w", err)
	}

	// Full presence log, oldest first.
	events, err := c.presenceRepo.ListLog(ctx)
	if err != nil {
		return fmt.Errorf("reload: loading presence log: %w", err)
	}

	// Groups arrive ordered by id: all-persons group first, methodology
	// groups next, user groups last. Every member list gets the same display
	// ordering so all views stay consistent.
	var roster []models.Person
	var userGroups []models.GroupWithMembers
	memberIndex := make(map[int]map[int]bool, len(groups))

	for i := range groups {
		SortPersons(groups[i].Members)

		ids := make(map[int]bool, len(groups[i].Members))
		for _, p := range groups[i].Members {
			ids[p.ID] = true
		}
		memberIndex[groups[i].ID] = ids

		if groups[i].ID == allPersonsGroupID {
			roster = groups[i].Members
		}
		if groups[i].ID >= firstUserGroupID {
			userGroups = append(userGroups, groups[i])
		}
	}

	rosterByID := make(map[int]models.Person, len(roster))
	for _, p := range roster {
		rosterByID[p.ID] = p
	}

	// Replace all caches together, then publish. Nothing above touched the
	// controller's state, so a failed reload leaves it fully intact.
	c.groups = groups
	c.roster = roster
	c.userGroups = userGroups
	c.memberIndex = memberIndex
	c.logDays = AggregateLog(events, rosterByID, c.loc)

	// Keep the picker's group context stable across reloads where possible;
	// fall back to the first user group when the old index no longer exists.
	if c.activeGroup >= len(c.userGroups) {
		c.activeGroup = len(c.userGroups) - 1
	}
	if c.activeGroup < 0 && len(c.userGroups) > 0 {
		c.activeGroup = 0
	}

	c.publish()
	return nil
}

// AddPerson validates the raw rank and methodology codes, inserts the person
// (presence defaults to outside) together with the all-persons and
// methodology group membership rows, and reloads.
//
// Invalid codes are rejected before any write with ErrUnknownRank or
// ErrUnknownMethodology.
func (c *Controller) AddPerson(ctx context.Context, form models.AddPersonForm) error {
	rank, err := models.ParseRankLevel(form.RankCode)
	if err != nil {
		return err
	}
	methodology, err := models.ParseMethodology(form.Methodology)
	if err != nil {
		return err
	}

	person := &models.Person{
		Name:        form.Name,
		Surname:     form.Surname,
		RankLevel:   rank,
		Methodology: methodology,
		Presence:    models.PresenceOut,
	}

	if err := c.personRepo.Create(ctx, person); err != nil {
		return fmt.Errorf("adding person: %w", err)
	}

	return c.Reload(ctx)
}

// AddGroup inserts a new user-managed group (no membership implied) and
// reloads. The new group's id is assigned past the reserved range.
func (c *Controller) AddGroup(ctx context.Context, name string) error {
	group := &models.Group{Name: name}
	if err := c.groupRepo.Create(ctx, group); err != nil {
		return fmt.Errorf("adding group: %w", err)
	}

	return c.Reload(ctx)
}

// AddMembership links a person to a group and reloads. An already existing
// (group, person) pair is rejected with ErrDuplicateMembership before any
// write occurs.
func (c *Controller) AddMembership(ctx context.Context, personID, groupID int) error {
	exists, err := c.groupRepo.MemberExists(ctx, groupID, personID)
	if err != nil {
		return fmt.Errorf("checking membership: %w", err)
	}
	if exists {
		return ErrDuplicateMembership
	}

	if err := c.groupRepo.AddMember(ctx, groupID, personID); err != nil {
		return fmt.Errorf("adding membership: %w", err)
	}

	return c.Reload(ctx)
}

// ToggleSelection flips the person's membership in the transient checked set
// and republishes the presence partitions with updated markers. No persisted
// state changes, so no reload is needed.
func (c *Controller) ToggleSelection(personID int) {
	if c.selection[personID] {
		delete(c.selection, personID)
	} else {
		c.selection[personID] = true
	}

	c.publish()
}

// SelectGroup replaces the entire transient selection with exactly the
// member set of the given group and republishes. Returns ErrUnknownGroup if
// the id is not in the membership index.
func (c *Controller) SelectGroup(groupID int) error {
	members, ok := c.memberIndex[groupID]
	if !ok {
		return ErrUnknownGroup
	}

	selection := make(map[int]bool, len(members))
	for id := range members {
		selection[id] = true
	}
	c.selection = selection

	c.publish()
	return nil
}

// ActivateGroup switches the picker's group context to the user group at the
// given selection index and republishes. Recomputation uses the cached
// member lists, so a group switch costs O(members) and issues no store read.
// An out-of-range index deactivates the picker context (picker shows the
// whole roster).
func (c *Controller) ActivateGroup(index int) {
	if index < 0 || index >= len(c.userGroups) {
		c.activeGroup = -1
	} else {
		c.activeGroup = index
	}

	c.publish()
}

// CheckIn persists presence = inside for every selected person, appending
// one log entry per person, then clears the selection and reloads.
func (c *Controller) CheckIn(ctx context.Context) error {
	return c.bulkSetPresence(ctx, models.PresenceIn)
}

// CheckOut persists presence = outside for every selected person, appending
// one log entry per person, then clears the selection and reloads.
func (c *Controller) CheckOut(ctx context.Context) error {
	return c.bulkSetPresence(ctx, models.PresenceOut)
}

// bulkSetPresence applies the direction to every id in the transient
// selection set. Each person's flag update and log append share one
// transaction, so flag and audit trail never diverge.
//
// Iteration follows roster order for a deterministic write sequence;
// selected ids no longer present in the roster are skipped. On a mid-batch
// failure the remaining selection is kept (so the user can retry), the error
// is reported, and a reload still runs so projections reflect the rows that
// were written before the failure.
func (c *Controller) bulkSetPresence(ctx context.Context, direction models.Presence) error {
	var failed error

	for _, p := range c.roster {
		if !c.selection[p.ID] {
			continue
		}
		if err := c.personRepo.SetPresence(ctx, p.ID, direction, time.Now().UTC()); err != nil {
			failed = fmt.Errorf("setting presence for person %d: %w", p.ID, err)
			break
		}
	}

	if failed == nil {
		c.selection = make(map[int]bool)
	}

	if err := c.Reload(ctx); err != nil {
		if failed == nil {
			failed = err
		}
	}

	return failed
}

// publish builds a complete snapshot from the current caches and hands it to
// the publisher. The cheap projections (partitions, markers, picker) are
// derived here on every call; the expensive ones (sorted groups, aggregated
// log) are rebuilt only by Reload.
func (c *Controller) publish() {
	snap := &Snapshot{
		Roster: personRows(c.roster),
		Log:    c.logDays,
	}

	// All groups in id order with their ordered member rows.
	snap.Groups = make([]models.GroupView, 0, len(c.groups))
	for _, g := range c.groups {
		snap.Groups = append(snap.Groups, models.GroupView{
			ID:      g.ID,
			Name:    g.Name,
			Members: personRows(g.Members),
		})
	}

	// User-group name list for the selector, in stable selection-index order.
	snap.UserGroupNames = make([]string, 0, len(c.userGroups))
	for _, g := range c.userGroups {
		snap.UserGroupNames = append(snap.UserGroupNames, g.Name)
	}

	// Presence partitions in roster-relative order, with parallel selection
	// markers. Every roster member lands in exactly one partition.
	for _, p := range c.roster {
		if p.Presence == models.PresenceIn {
			snap.Inside = append(snap.Inside, p.View())
			snap.InsideSelected = append(snap.InsideSelected, c.selection[p.ID])
		} else {
			snap.Outside = append(snap.Outside, p.View())
			snap.OutsideSelected = append(snap.OutsideSelected, c.selection[p.ID])
		}
	}

	// Picker: roster members not yet in the active user group. With no
	// active group the picker offers the whole roster.
	if c.activeGroup >= 0 && c.activeGroup < len(c.userGroups) {
		memberIDs := c.memberIndex[c.userGroups[c.activeGroup].ID]
		snap.Picker = personRows(FilterNonMembers(c.roster, memberIDs))
	} else {
		snap.Picker = personRows(c.roster)
	}

	c.current = snap
	if c.pub != nil {
		c.pub.Publish(snap)
	}
}

// personRows converts persons to their published display rows.
func personRows(persons []models.Person) []models.PersonRow {
	rows := make([]models.PersonRow, 0, len(persons))
	for _, p := range persons {
		rows = append(rows, p.View())
	}
	return rows
}
