package training

import (
	"sync"

	"github.com/escbch/TrainingApp-2/internal/models"
)

// PlanCatalog is the read-only source of selectable plans. Satisfied by
// catalog.InMemory and catalog.File.
type PlanCatalog interface {
	Plans() []models.Plan
	PlanByID(id string) (models.Plan, bool)
}

// Planner ties the plan catalog, the template provider, and the schedule
// store together: the activation lifecycle of the original tracker. It is
// the single entry point the transport layers talk to.
type Planner struct {
	catalog   PlanCatalog
	templates TemplateProvider
	schedule  *Schedule

	mu     sync.RWMutex
	active *models.ActivePlan
}

// NewPlanner creates a planner with an empty schedule and no active plan.
func NewPlanner(catalog PlanCatalog, templates TemplateProvider) *Planner {
	return &Planner{
		catalog:   catalog,
		templates: templates,
		schedule:  NewSchedule(),
	}
}

// Plans lists the catalog.
func (p *Planner) Plans() []models.Plan {
	return p.catalog.Plans()
}

// PlanByID looks up one plan.
func (p *Planner) PlanByID(id string) (models.Plan, bool) {
	return p.catalog.PlanByID(id)
}

// Active returns a copy of the active plan, or nil when no plan is active.
func (p *Planner) Active() *models.ActivePlan {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.active == nil {
		return nil
	}
	ap := *p.active
	return &ap
}

// Activate replaces the active plan and rebuilds the schedule from scratch.
// Re-activation is clear-plus-activate: all previously entered data is
// discarded. An unknown plan id still becomes the active reference but
// materializes an empty schedule.
func (p *Planner) Activate(planID string, start models.Date, weekdays models.WeekdaySet) {
	p.Restore(&models.ActivePlan{PlanID: planID, StartDate: start, Weekdays: weekdays})
}

// Restore installs an already-constructed active plan (e.g. loaded from
// storage at boot) and rebuilds the schedule for it.
func (p *Planner) Restore(active *models.ActivePlan) {
	p.mu.Lock()
	p.active = active
	p.mu.Unlock()
	p.schedule.Rebuild(active, p.catalog.PlanByID, p.templates)
}

// ClearActive drops the active plan and discards the schedule.
func (p *Planner) ClearActive() {
	p.mu.Lock()
	p.active = nil
	p.mu.Unlock()
	p.schedule.Clear()
}

// TrainingDays returns the materialized schedule in chronological order.
func (p *Planner) TrainingDays() []models.TrainingDay {
	return p.schedule.Days()
}

// TrainingDay returns the day at the given date, if scheduled.
func (p *Planner) TrainingDay(date models.Date) (models.TrainingDay, bool) {
	return p.schedule.Day(date)
}

// UpdateSet applies a patch to one set. Returns false for unknown
// date/exercise/set without changing anything.
func (p *Planner) UpdateSet(date models.Date, exerciseID string, setIndex int, patch SetPatch) bool {
	return p.schedule.UpdateSet(date, exerciseID, setIndex, patch)
}

// CountMissingEntries counts unentered sets for the date.
func (p *Planner) CountMissingEntries(date models.Date) int {
	return p.schedule.CountMissingEntries(date)
}

// FillMissingWithZeros zero-fills every unentered set of the date and
// returns how many sets were filled.
func (p *Planner) FillMissingWithZeros(date models.Date) int {
	return p.schedule.FillMissingWithZeros(date)
}

// DaySummary computes the summary for the date's day, if scheduled.
func (p *Planner) DaySummary(date models.Date) (models.TrainingDaySummary, bool) {
	day, ok := p.schedule.Day(date)
	if !ok {
		return models.TrainingDaySummary{}, false
	}
	return ComputeDaySummary(day), true
}

// Suggestions returns suggested weights for the given exercise's later sets,
// keyed by set index. ok=false when the date is unscheduled or the exercise
// is unknown; an empty map means no anchor or a manual exercise.
func (p *Planner) Suggestions(date models.Date, exerciseID string) (map[int]float64, bool) {
	day, ok := p.schedule.Day(date)
	if !ok {
		return nil, false
	}
	for _, ex := range day.Exercises {
		if ex.ID == exerciseID {
			return SetSuggestions(ex), true
		}
	}
	return nil, false
}
