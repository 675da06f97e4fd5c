package training

import (
	"sort"
	"sync"

	"github.com/escbch/TrainingApp-2/internal/models"
	"github.com/google/uuid"
)

// SetPatch is a partial update for one set. Nil fields leave the
// corresponding set field unchanged.
type SetPatch struct {
	Weight      *float64 `json:"weight,omitempty"`
	AchievedRPE *float64 `json:"achieved_rpe,omitempty"`
	Completed   *bool    `json:"completed,omitempty"`
}

// PlanLookup resolves a plan id from the catalog. ok=false for unknown ids.
type PlanLookup func(id string) (models.Plan, bool)

// Schedule owns the materialized calendar of training days and all set-level
// state. It is rebuilt in bulk on plan activation and mutated only through
// UpdateSet and FillMissingWithZeros. A mutex serializes access so the store
// can live inside an HTTP server; the semantics stay call-and-return.
type Schedule struct {
	mu   sync.RWMutex
	days map[models.Date]*models.TrainingDay
}

// NewSchedule returns an empty schedule.
func NewSchedule() *Schedule {
	return &Schedule{days: make(map[models.Date]*models.TrainingDay)}
}

// Rebuild discards all days and materializes the schedule for the given
// active plan. A nil active plan or an unknown plan id leaves the schedule
// empty; neither is an error. Each day gets independent deep copies of the
// template exercises, so edits never alias across dates, and each exercise
// instance gets a fresh id.
func (s *Schedule) Rebuild(active *models.ActivePlan, lookup PlanLookup, templates TemplateProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.days = make(map[models.Date]*models.TrainingDay)
	if active == nil {
		return
	}
	plan, ok := lookup(active.PlanID)
	if !ok {
		return
	}

	dates := GenerateTrainingDates(active.StartDate, plan.Weeks, active.Weekdays)
	rotation := templates.DayTemplates(plan.DaysPerWeek)
	if len(rotation) == 0 {
		return
	}

	for i, date := range dates {
		tpl := rotation[i%len(rotation)]
		exercises := make([]models.Exercise, len(tpl.Exercises))
		for j, ex := range tpl.Exercises {
			inst := ex.Clone()
			inst.ID = uuid.NewString()
			exercises[j] = inst
		}
		s.days[date] = &models.TrainingDay{Date: date, Exercises: exercises}
	}
}

// Days returns deep copies of all training days in chronological order.
func (s *Schedule) Days() []models.TrainingDay {
	s.mu.RLock()
	defer s.mu.RUnlock()

	days := make([]models.TrainingDay, 0, len(s.days))
	for _, d := range s.days {
		days = append(days, d.Clone())
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

// Day returns a deep copy of the day at the given date, if scheduled.
func (s *Schedule) Day(date models.Date) (models.TrainingDay, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.days[date]
	if !ok {
		return models.TrainingDay{}, false
	}
	return d.Clone(), true
}

// UpdateSet applies a patch to the set identified by (date, exerciseID,
// setIndex). Nil patch fields leave the set's fields unchanged. Returns
// false (and changes nothing) when the date is unscheduled or the exercise
// or set is not found.
func (s *Schedule) UpdateSet(date models.Date, exerciseID string, setIndex int, patch SetPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, ok := s.days[date]
	if !ok {
		return false
	}
	for i := range day.Exercises {
		ex := &day.Exercises[i]
		if ex.ID != exerciseID {
			continue
		}
		for j := range ex.Sets {
			set := &ex.Sets[j]
			if set.SetIndex != setIndex {
				continue
			}
			if patch.Weight != nil {
				w := *patch.Weight
				set.Weight = &w
			}
			if patch.AchievedRPE != nil {
				r := *patch.AchievedRPE
				set.AchievedRPE = &r
			}
			if patch.Completed != nil {
				set.Completed = *patch.Completed
			}
			return true
		}
		return false
	}
	return false
}

// CountMissingEntries counts the sets in the day with neither a performed
// weight nor an achieved RPE. Returns 0 for an unscheduled date.
func (s *Schedule) CountMissingEntries(date models.Date) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	day, ok := s.days[date]
	if !ok {
		return 0
	}
	missing := 0
	for _, ex := range day.Exercises {
		for _, set := range ex.Sets {
			if !set.Entered() {
				missing++
			}
		}
	}
	return missing
}

// FillMissingWithZeros sets weight and achieved RPE to zero on every
// unentered set of the day, leaving completion flags alone. Returns the
// number of sets filled; 0 for an unscheduled date.
func (s *Schedule) FillMissingWithZeros(date models.Date) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, ok := s.days[date]
	if !ok {
		return 0
	}
	filled := 0
	for i := range day.Exercises {
		for j := range day.Exercises[i].Sets {
			set := &day.Exercises[i].Sets[j]
			if set.Entered() {
				continue
			}
			zeroW, zeroR := 0.0, 0.0
			set.Weight = &zeroW
			set.AchievedRPE = &zeroR
			filled++
		}
	}
	return filled
}

// Clear discards all materialized days.
func (s *Schedule) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days = make(map[models.Date]*models.TrainingDay)
}
