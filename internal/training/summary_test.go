package training

import (
	"testing"
	"time"

	"github.com/escbch/TrainingApp-2/internal/models"
)

// TestComputeDaySummary verifies the fold over all sets: set count, target
// rep total, and weight moved with unset weights counting as zero.
func TestComputeDaySummary(t *testing.T) {
	day := models.TrainingDay{
		Date: models.NewDate(2025, time.March, 3),
		Exercises: []models.Exercise{
			{
				Name: "Bench Press",
				Sets: []models.ExerciseSet{
					{SetIndex: 1, Reps: 5, Weight: fp(100)},
					{SetIndex: 2, Reps: 5, Weight: fp(100)},
				},
			},
			{
				Name: "Row",
				Sets: []models.ExerciseSet{
					{SetIndex: 1, Reps: 8}, // weight never entered
				},
			},
		},
	}

	sum := ComputeDaySummary(day)
	if sum.TotalSets != 3 {
		t.Errorf("total sets = %d, want 3", sum.TotalSets)
	}
	if sum.TotalReps != 18 {
		t.Errorf("total reps = %d, want 18", sum.TotalReps)
	}
	if sum.TotalWeightMovedKg != 1000 {
		t.Errorf("weight moved = %.1f, want 1000", sum.TotalWeightMovedKg)
	}
}

// TestComputeDaySummaryEmptyDay verifies an all-zero summary for a day with
// no exercises.
func TestComputeDaySummaryEmptyDay(t *testing.T) {
	sum := ComputeDaySummary(models.TrainingDay{Date: models.NewDate(2025, time.March, 3)})
	if sum != (models.TrainingDaySummary{}) {
		t.Errorf("got %+v, want zero summary", sum)
	}
}
