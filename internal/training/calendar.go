package training

import "github.com/escbch/TrainingApp-2/internal/models"

// GenerateTrainingDates returns every date in [start, start+weeks*7) whose
// weekday is in trainingDays, in chronological order. It returns an empty
// list when weeks <= 0 or the weekday set is empty.
func GenerateTrainingDates(start models.Date, weeks int, trainingDays models.WeekdaySet) []models.Date {
	if weeks <= 0 || len(trainingDays) == 0 {
		return nil
	}
	end := start.AddDays(weeks * 7)
	var dates []models.Date
	for d := start; d.Before(end); d = d.AddDays(1) {
		if trainingDays.Contains(d.Weekday()) {
			dates = append(dates, d)
		}
	}
	return dates
}
