package training

import "github.com/escbch/TrainingApp-2/internal/models"

// DayTemplate is one template day: a fixed, named list of exercise skeletons
// assigned cyclically to generated calendar dates.
type DayTemplate struct {
	Name      string            `json:"name"`
	Exercises []models.Exercise `json:"exercises"`
}

// TemplateProvider supplies the rotation of day templates for a weekly
// training-day count. Implementations return skeletons only: performed
// weight and achieved RPE unset, completion false.
type TemplateProvider interface {
	DayTemplates(daysPerWeek int) []DayTemplate
}

// BuiltinTemplates is the closed lookup table of default day templates.
// 3 and 4 days per week have dedicated rotations; anything else falls back
// to a single two-exercise day.
type BuiltinTemplates struct{}

var _ TemplateProvider = BuiltinTemplates{}

// DayTemplates returns the rotation for the given days-per-week count.
func (BuiltinTemplates) DayTemplates(daysPerWeek int) []DayTemplate {
	switch daysPerWeek {
	case 3:
		return []DayTemplate{
			{Name: "Press & Squat", Exercises: []models.Exercise{
				anchored("Bench Press", threeBy(5, rpe(7.5))),
				manual("DB Bench Press", threeBy(10, rpe(8.0))),
				manual("Squat", threeBy(5, rpe(7.5))),
			}},
			{Name: "Overhead & Pull", Exercises: []models.Exercise{
				anchored("OHP", threeBy(8, rpe(8.0))),
				manual("Pull-Ups", threeBy(8, rpe(8.0))),
				manual("Leg Curl", threeBy(12, rpe(8.0))),
			}},
			{Name: "Deadlift & Row", Exercises: []models.Exercise{
				anchored("Deadlift", threeBy(5, rpe(7.5))),
				manual("Row", threeBy(10, rpe(8.0))),
				manual("Leg Press", threeBy(12, rpe(8.0))),
			}},
		}
	case 4:
		return []DayTemplate{
			{Name: "Bench", Exercises: []models.Exercise{
				anchored("Bench Press", threeBy(5, rpe(7.5))),
				manual("Incline DB Press", threeBy(10, rpe(8.0))),
			}},
			{Name: "Squat", Exercises: []models.Exercise{
				anchored("Squat", threeBy(5, rpe(7.5))),
				manual("RDL", threeBy(8, rpe(8.0))),
			}},
			{Name: "Press", Exercises: []models.Exercise{
				anchored("OHP", threeBy(6, rpe(8.0))),
				manual("Row", threeBy(10, rpe(8.0))),
			}},
			{Name: "Deadlift", Exercises: []models.Exercise{
				anchored("Deadlift", threeBy(3, rpe(8.0))),
				manual("Leg Press", threeBy(12, rpe(8.0))),
			}},
		}
	default:
		return []DayTemplate{
			{Name: "Full Body", Exercises: []models.Exercise{
				anchored("Bench Press", threeBy(5, rpe(7.5))),
				manual("Squat", threeBy(5, rpe(7.5))),
			}},
		}
	}
}

// threeBy builds three sets of the given rep count and target RPE.
func threeBy(reps int, targetRPE *float64) []models.ExerciseSet {
	sets := make([]models.ExerciseSet, 3)
	for i := range sets {
		sets[i] = models.ExerciseSet{SetIndex: i + 1, Reps: reps, TargetRPE: targetRPE}
	}
	return sets
}

func anchored(name string, sets []models.ExerciseSet) models.Exercise {
	return models.Exercise{Name: name, Mode: models.WeightModeAnchoredFirstSet, Sets: sets}
}

func manual(name string, sets []models.ExerciseSet) models.Exercise {
	return models.Exercise{Name: name, Mode: models.WeightModeManual, Sets: sets}
}

func rpe(v float64) *float64 {
	return &v
}
