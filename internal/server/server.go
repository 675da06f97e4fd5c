package server

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/escbch/TrainingApp-2/internal/models"
	"github.com/escbch/TrainingApp-2/internal/storage"
	"github.com/escbch/TrainingApp-2/internal/training"
	"github.com/go-chi/chi/v5"
)

// Journal is the optional write-through persistence for the active plan and
// entered sets. Satisfied by *storage.DB; a nil Journal leaves the tracker
// purely in memory.
type Journal interface {
	SaveActivePlan(ctx context.Context, ap models.ActivePlan) error
	GetActivePlan(ctx context.Context) (*models.ActivePlan, error)
	ClearActivePlan(ctx context.Context) error
	UpsertSetEntry(ctx context.Context, e storage.SetEntryRow) error
	SetEntries(ctx context.Context) ([]storage.SetEntryRow, error)
	DeleteSetEntries(ctx context.Context) error
}

// Compile-time check: *storage.DB satisfies Journal.
var _ Journal = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	planner *training.Planner
	journal Journal
	log     *slog.Logger
	apiKey  string
	router  chi.Router
}

// New creates a new Server with all routes configured. journal may be nil.
func New(planner *training.Planner, journal Journal, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		planner: planner,
		journal: journal,
		log:     log,
		apiKey:  apiKey,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Query endpoints
	s.router.Get("/api/v1/plans", s.handleListPlans)
	s.router.Get("/api/v1/plans/{id}", s.handleGetPlan)
	s.router.Get("/api/v1/active", s.handleGetActive)
	s.router.Get("/api/v1/days", s.handleListDays)
	s.router.Get("/api/v1/days/{date}", s.handleGetDay)
	s.router.Get("/api/v1/days/{date}/summary", s.handleDaySummary)
	s.router.Get("/api/v1/days/{date}/missing", s.handleMissingEntries)
	s.router.Get("/api/v1/days/{date}/exercises/{exerciseID}/suggestions", s.handleSuggestions)

	// Command endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/api/v1/active", s.handleActivate)
		r.Delete("/api/v1/active", s.handleClearActive)
		r.Patch("/api/v1/days/{date}/exercises/{exerciseID}/sets/{setIndex}", s.handleUpdateSet)
		r.Post("/api/v1/days/{date}/fill-zeros", s.handleFillZeros)
	})
}

// RestoreFromJournal rebuilds the schedule from the stored active plan and
// replays journaled set entries. A nil journal or an empty journal is a
// no-op. Entries that no longer map onto the schedule are skipped.
func RestoreFromJournal(ctx context.Context, planner *training.Planner, journal Journal, log *slog.Logger) error {
	if journal == nil {
		return nil
	}

	active, err := journal.GetActivePlan(ctx)
	if err != nil {
		return err
	}
	if active == nil {
		return nil
	}
	planner.Restore(active)

	entries, err := journal.SetEntries(ctx)
	if err != nil {
		return err
	}
	replayed, skipped := 0, 0
	for _, e := range entries {
		day, ok := planner.TrainingDay(e.DayDate)
		if !ok || e.ExerciseSlot < 0 || e.ExerciseSlot >= len(day.Exercises) {
			skipped++
			continue
		}
		completed := e.Completed
		applied := planner.UpdateSet(e.DayDate, day.Exercises[e.ExerciseSlot].ID, e.SetIndex, training.SetPatch{
			Weight:      e.Weight,
			AchievedRPE: e.AchievedRPE,
			Completed:   &completed,
		})
		if applied {
			replayed++
		} else {
			skipped++
		}
	}
	log.Info("schedule restored from journal",
		"plan_id", active.PlanID,
		"days", len(planner.TrainingDays()),
		"entries_replayed", replayed,
		"entries_skipped", skipped,
	)
	return nil
}
