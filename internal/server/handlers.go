package server

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"

	"github.com/escbch/TrainingApp-2/internal/models"
	"github.com/escbch/TrainingApp-2/internal/storage"
	"github.com/escbch/TrainingApp-2/internal/training"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.planner.Plans())
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	plan, ok := s.planner.PlanByID(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "plan not found"})
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleGetActive(w http.ResponseWriter, r *http.Request) {
	// A nil active plan serializes as JSON null.
	writeJSON(w, http.StatusOK, s.planner.Active())
}

type activateRequest struct {
	PlanID    string `json:"plan_id"`
	StartDate string `json:"start_date"`
	Weekdays  []int  `json:"weekdays"`
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	var req activateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	start, err := models.ParseDate(req.StartDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	weekdays, err := models.WeekdaySetFromISO(req.Weekdays)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if len(weekdays) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weekdays must not be empty"})
		return
	}

	s.planner.Activate(req.PlanID, start, weekdays)

	if s.journal != nil {
		ap := s.planner.Active()
		if err := s.journal.SaveActivePlan(r.Context(), *ap); err != nil {
			s.log.Warn("journaling active plan failed", "error", err)
		}
		// Activation discards all entered data; the journal follows.
		if err := s.journal.DeleteSetEntries(r.Context()); err != nil {
			s.log.Warn("clearing set entry journal failed", "error", err)
		}
	}

	scheduled := len(s.planner.TrainingDays())
	s.log.Info("plan activated", "plan_id", req.PlanID, "start", start.String(), "scheduled_days", scheduled)
	writeJSON(w, http.StatusOK, map[string]any{"scheduled_days": scheduled})
}

func (s *Server) handleClearActive(w http.ResponseWriter, r *http.Request) {
	s.planner.ClearActive()

	if s.journal != nil {
		if err := s.journal.ClearActivePlan(r.Context()); err != nil {
			s.log.Warn("clearing active plan journal failed", "error", err)
		}
		if err := s.journal.DeleteSetEntries(r.Context()); err != nil {
			s.log.Warn("clearing set entry journal failed", "error", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDays(w http.ResponseWriter, r *http.Request) {
	days := s.planner.TrainingDays()
	if days == nil {
		days = []models.TrainingDay{}
	}
	writeJSON(w, http.StatusOK, days)
}

func (s *Server) handleGetDay(w http.ResponseWriter, r *http.Request) {
	date, ok := s.parseDate(w, r)
	if !ok {
		return
	}
	day, ok := s.planner.TrainingDay(date)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no training day on this date"})
		return
	}
	writeJSON(w, http.StatusOK, day)
}

func (s *Server) handleDaySummary(w http.ResponseWriter, r *http.Request) {
	date, ok := s.parseDate(w, r)
	if !ok {
		return
	}
	sum, ok := s.planner.DaySummary(date)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no training day on this date"})
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleMissingEntries(w http.ResponseWriter, r *http.Request) {
	date, ok := s.parseDate(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"missing": s.planner.CountMissingEntries(date)})
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	date, ok := s.parseDate(w, r)
	if !ok {
		return
	}
	exerciseID := chi.URLParam(r, "exerciseID")
	setIndex, err := strconv.Atoi(chi.URLParam(r, "setIndex"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid set index"})
		return
	}

	var patch training.SetPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if !s.planner.UpdateSet(date, exerciseID, setIndex, patch) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "set not found"})
		return
	}

	s.journalSet(r, date, exerciseID, setIndex)
	writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

func (s *Server) handleFillZeros(w http.ResponseWriter, r *http.Request) {
	date, ok := s.parseDate(w, r)
	if !ok {
		return
	}
	filled := s.planner.FillMissingWithZeros(date)
	if filled > 0 {
		s.journalDay(r, date)
	}
	writeJSON(w, http.StatusOK, map[string]int{"filled": filled})
}

type setSuggestion struct {
	SetIndex        int     `json:"set_index"`
	SuggestedWeight float64 `json:"suggested_weight"`
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	date, ok := s.parseDate(w, r)
	if !ok {
		return
	}
	suggestions, ok := s.planner.Suggestions(date, chi.URLParam(r, "exerciseID"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "exercise not found"})
		return
	}

	out := make([]setSuggestion, 0, len(suggestions))
	for idx, weight := range suggestions {
		out = append(out, setSuggestion{SetIndex: idx, SuggestedWeight: weight})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SetIndex < out[j].SetIndex })
	writeJSON(w, http.StatusOK, map[string]any{"suggestions": out})
}

// journalSet writes the current state of one set through to the journal.
// Journal failures are logged, not surfaced: the in-memory update already
// happened and the contract has no user-visible error for it.
func (s *Server) journalSet(r *http.Request, date models.Date, exerciseID string, setIndex int) {
	if s.journal == nil {
		return
	}
	day, ok := s.planner.TrainingDay(date)
	if !ok {
		return
	}
	for slot, ex := range day.Exercises {
		if ex.ID != exerciseID {
			continue
		}
		for _, set := range ex.Sets {
			if set.SetIndex != setIndex {
				continue
			}
			err := s.journal.UpsertSetEntry(r.Context(), storage.SetEntryRow{
				DayDate:      date,
				ExerciseSlot: slot,
				SetIndex:     set.SetIndex,
				Weight:       set.Weight,
				AchievedRPE:  set.AchievedRPE,
				Completed:    set.Completed,
			})
			if err != nil {
				s.log.Warn("journaling set entry failed", "date", date.String(), "error", err)
			}
			return
		}
	}
}

// journalDay writes every entered set of the day through to the journal.
func (s *Server) journalDay(r *http.Request, date models.Date) {
	if s.journal == nil {
		return
	}
	day, ok := s.planner.TrainingDay(date)
	if !ok {
		return
	}
	for slot, ex := range day.Exercises {
		for _, set := range ex.Sets {
			if !set.Entered() && !set.Completed {
				continue
			}
			err := s.journal.UpsertSetEntry(r.Context(), storage.SetEntryRow{
				DayDate:      date,
				ExerciseSlot: slot,
				SetIndex:     set.SetIndex,
				Weight:       set.Weight,
				AchievedRPE:  set.AchievedRPE,
				Completed:    set.Completed,
			})
			if err != nil {
				s.log.Warn("journaling set entry failed", "date", date.String(), "error", err)
			}
		}
	}
}

func (s *Server) parseDate(w http.ResponseWriter, r *http.Request) (models.Date, bool) {
	date, err := models.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date, want YYYY-MM-DD"})
		return models.Date{}, false
	}
	return date, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
