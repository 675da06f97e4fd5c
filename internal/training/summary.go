package training

import "github.com/escbch/TrainingApp-2/internal/models"

// ComputeDaySummary folds a day's sets into totals. Unset performed weights
// count as zero toward weight moved; reps are the template's target reps.
func ComputeDaySummary(day models.TrainingDay) models.TrainingDaySummary {
	var sum models.TrainingDaySummary
	for _, ex := range day.Exercises {
		for _, s := range ex.Sets {
			sum.TotalSets++
			sum.TotalReps += s.Reps
			if s.Weight != nil {
				sum.TotalWeightMovedKg += *s.Weight * float64(s.Reps)
			}
		}
	}
	return sum
}
