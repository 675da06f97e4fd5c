package models

// Plan is an immutable catalog entry describing a multi-week program.
type Plan struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Weeks       int    `json:"weeks"`
	DaysPerWeek int    `json:"days_per_week"`
}

// ActivePlan references the currently activated plan. At most one exists.
type ActivePlan struct {
	PlanID    string     `json:"plan_id"`
	StartDate Date       `json:"start_date"`
	Weekdays  WeekdaySet `json:"weekdays"`
}

// WeightMode controls how working weights for an exercise are determined.
type WeightMode string

const (
	// WeightModeManual leaves every set's weight to the lifter.
	WeightModeManual WeightMode = "manual"
	// WeightModeAnchoredFirstSet derives suggested weights for sets after
	// the first from the E1RM of the exercise's own first set.
	WeightModeAnchoredFirstSet WeightMode = "anchored_first_set_e1rm"
)

// ExerciseSet is one set of an exercise. SetIndex is 1-based and is the
// identity key for edits. Reps and TargetRPE come from the template and are
// fixed; Weight, AchievedRPE, and Completed are entered by the lifter.
type ExerciseSet struct {
	SetIndex    int      `json:"set_index"`
	Reps        int      `json:"reps"`
	TargetRPE   *float64 `json:"target_rpe,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	AchievedRPE *float64 `json:"achieved_rpe,omitempty"`
	Completed   bool     `json:"completed"`
}

// Entered reports whether the set has any numeric entry. A set with neither
// weight nor achieved RPE counts as a missing entry; the completion flag is
// independent of entry state.
func (s ExerciseSet) Entered() bool {
	return s.Weight != nil || s.AchievedRPE != nil
}

// Clone returns a value copy with freshly allocated optional fields.
func (s ExerciseSet) Clone() ExerciseSet {
	c := s
	c.TargetRPE = cloneFloat(s.TargetRPE)
	c.Weight = cloneFloat(s.Weight)
	c.AchievedRPE = cloneFloat(s.AchievedRPE)
	return c
}

// Exercise is one exercise within a training day, owned exclusively by that
// day. The ID is unique within the day and stable within one materialization
// of the schedule.
type Exercise struct {
	ID   string        `json:"id"`
	Name string        `json:"name"`
	Mode WeightMode    `json:"mode"`
	Sets []ExerciseSet `json:"sets"`
}

// Clone returns a deep copy sharing no mutable state with the original.
func (e Exercise) Clone() Exercise {
	c := e
	c.Sets = make([]ExerciseSet, len(e.Sets))
	for i, s := range e.Sets {
		c.Sets[i] = s.Clone()
	}
	return c
}

// TrainingDay is one scheduled calendar date with its exercises.
type TrainingDay struct {
	Date      Date       `json:"date"`
	Exercises []Exercise `json:"exercises"`
}

// Clone returns a deep copy of the day.
func (d TrainingDay) Clone() TrainingDay {
	c := d
	c.Exercises = make([]Exercise, len(d.Exercises))
	for i, e := range d.Exercises {
		c.Exercises[i] = e.Clone()
	}
	return c
}

// TrainingDaySummary is derived from a day on demand and never stored.
type TrainingDaySummary struct {
	TotalSets          int     `json:"total_sets"`
	TotalReps          int     `json:"total_reps"`
	TotalWeightMovedKg float64 `json:"total_weight_moved_kg"`
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
