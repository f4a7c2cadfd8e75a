// Package handlers implements the HTTP presentation boundary for the CampWatch
// application. It consumes the controller's published snapshots on the read
// side and maps mutation routes onto the controller's handlers on the write
// side.
package handlers

import (
	"errors"
	"strconv"
	"sync"

	"github.com/avissapr/campwatch/internal/models"
	"github.com/avissapr/campwatch/internal/repository"
	"github.com/avissapr/campwatch/internal/services"
	"github.com/avissapr/campwatch/internal/validation"
	"github.com/gofiber/fiber/v2"
)

// Server adapts the single-threaded controller to HTTP.
// It is the production services.Publisher: every snapshot the controller
// builds lands here and is served by the read endpoints.
//
// The controller is not safe for concurrent use, so every route — reads
// included — runs under one mutex. That preserves the core's run-to-completion
// event model: no handler ever observes a partially updated projection.
type Server struct {
	mu        sync.Mutex
	ctl       *services.Controller
	snapshot  *services.Snapshot
	statsRepo *repository.StatsRepository
	validator *validation.ValidationService
}

// NewServer creates the HTTP adapter. Wire the returned server into the
// controller as its publisher before the first reload:
//
//	srv := handlers.NewServer()
//	ctl := services.NewController(srv, loc)
//	srv.SetController(ctl)
func NewServer() *Server {
	return &Server{
		statsRepo: repository.NewStatsRepository(),
		validator: validation.NewValidationService(),
	}
}

// SetController attaches the controller whose mutation handlers the routes
// invoke. Separate from NewServer because server and controller reference
// each other (the server is the controller's publisher).
func (s *Server) SetController(ctl *services.Controller) {
	s.ctl = ctl
}

// Publish implements services.Publisher. Called synchronously from the
// controller while the serving mutex is held by the running handler (or by
// the startup reload before the listener is up).
func (s *Server) Publish(snap *services.Snapshot) {
	s.snapshot = snap
}

// Register mounts all routes on the fiber application.
func (s *Server) Register(app *fiber.App) {
	// Published projections
	app.Get("/roster", s.Roster)
	app.Get("/groups", s.Groups)
	app.Get("/presence", s.Presence)
	app.Get("/picker", s.Picker)
	app.Get("/log", s.Log)
	app.Get("/stats", s.Stats)

	// Mutations
	app.Post("/persons", s.AddPerson)
	app.Post("/groups", s.AddGroup)
	app.Post("/groups/:id/members", s.AddGroupMember)
	app.Post("/selection/toggle/:id", s.ToggleSelection)
	app.Post("/selection/group/:id", s.SelectGroup)
	app.Post("/selection/active/:index", s.ActivateGroup)
	app.Post("/checkin", s.CheckIn)
	app.Post("/checkout", s.CheckOut)
}

// ============================================================================
// Read Endpoints (published projections)
// ============================================================================

// Roster returns the full ordered roster.
func (s *Server) Roster(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.mustSnapshot()
	return c.JSON(fiber.Map{"roster": snap.Roster})
}

// Groups returns every group with ordered members plus the user-group name
// list for the selector.
func (s *Server) Groups(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.mustSnapshot()
	return c.JSON(fiber.Map{
		"groups":           snap.Groups,
		"user_group_names": snap.UserGroupNames,
	})
}

// Presence returns the inside/outside partitions with their parallel
// selection-marker lists.
func (s *Server) Presence(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.mustSnapshot()
	return c.JSON(fiber.Map{
		"inside":           snap.Inside,
		"inside_selected":  snap.InsideSelected,
		"outside":          snap.Outside,
		"outside_selected": snap.OutsideSelected,
	})
}

// Picker returns the filtered "available to add" list for the active group.
func (s *Server) Picker(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.mustSnapshot()
	return c.JSON(fiber.Map{"picker": snap.Picker})
}

// Log returns the aggregated Day -> Minute -> Entries presence log.
func (s *Server) Log(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.mustSnapshot()
	return c.JSON(fiber.Map{"log": snap.Log})
}

// Stats returns roster and log headcounts straight from the store. Purely
// informational; not part of the controller's derived caches.
func (s *Server) Stats(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.statsRepo.GetRosterStats(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to load stats")
	}
	return c.JSON(stats)
}

// ============================================================================
// Mutation Endpoints
// ============================================================================

// AddPerson handles person creation.
// Body: {"name": ..., "surname": ..., "rank": <code>, "methodology": <code>}
// Invalid codes are rejected with 400 before any write occurs.
func (s *Server) AddPerson(c *fiber.Ctx) error {
	var form models.AddPersonForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	form.Name = s.validator.SanitizeString(form.Name)
	form.Surname = s.validator.SanitizeString(form.Surname)
	if err := s.validator.ValidatePersonName("name", form.Name); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := s.validator.ValidatePersonName("surname", form.Surname); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctl.AddPerson(c.Context(), form); err != nil {
		return mutationError(err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// AddGroup handles group creation. Body: {"name": ...}
func (s *Server) AddGroup(c *fiber.Ctx) error {
	var form models.AddGroupForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	form.Name = s.validator.SanitizeString(form.Name)
	if err := s.validator.ValidateGroupName(form.Name); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctl.AddGroup(c.Context(), form.Name); err != nil {
		return mutationError(err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// AddGroupMember adds a person to the group in the URL.
// Body: {"person_id": ...}. Duplicate memberships answer 409.
func (s *Server) AddGroupMember(c *fiber.Ctx) error {
	groupID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid group id")
	}

	var form models.AddMembershipForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctl.AddMembership(c.Context(), form.PersonID, groupID); err != nil {
		return mutationError(err)
	}
	return c.SendStatus(fiber.StatusCreated)
}

// ToggleSelection flips one person in the transient checked set.
func (s *Server) ToggleSelection(c *fiber.Ctx) error {
	personID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid person id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctl.ToggleSelection(personID)
	return c.SendStatus(fiber.StatusNoContent)
}

// SelectGroup replaces the transient selection with a group's member set.
func (s *Server) SelectGroup(c *fiber.Ctx) error {
	groupID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid group id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctl.SelectGroup(groupID); err != nil {
		return mutationError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ActivateGroup switches the picker's group context by selection index.
func (s *Server) ActivateGroup(c *fiber.Ctx) error {
	index, err := strconv.Atoi(c.Params("index"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid group index")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ctl.ActivateGroup(index)
	return c.SendStatus(fiber.StatusNoContent)
}

// CheckIn applies a bulk check-in to the current selection.
func (s *Server) CheckIn(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctl.CheckIn(c.Context()); err != nil {
		return mutationError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CheckOut applies a bulk check-out to the current selection.
func (s *Server) CheckOut(c *fiber.Ctx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctl.CheckOut(c.Context()); err != nil {
		return mutationError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// mustSnapshot returns the latest published snapshot; before the first
// successful reload an empty snapshot is served instead of nil.
func (s *Server) mustSnapshot() *services.Snapshot {
	if s.snapshot == nil {
		return &services.Snapshot{}
	}
	return s.snapshot
}

// mutationError maps the controller's error taxonomy onto HTTP statuses:
// validation errors 400, duplicates 409, unknown ids 404, store errors 500.
func mutationError(err error) error {
	switch {
	case errors.Is(err, models.ErrUnknownRank),
		errors.Is(err, models.ErrUnknownMethodology),
		errors.Is(err, models.ErrUnknownPresence):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrDuplicateMembership):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrUnknownGroup):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
