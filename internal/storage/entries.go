package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/escbch/TrainingApp-2/internal/models"
)

// SetEntryRow is one journaled set entry. Exercises are addressed by their
// position within the day (slot) rather than their instance id, because
// instance ids are regenerated on every schedule rebuild while slots are
// stable for identical plan parameters.
type SetEntryRow struct {
	DayDate      models.Date
	ExerciseSlot int
	SetIndex     int
	Weight       *float64
	AchievedRPE  *float64
	Completed    bool
}

// UpsertSetEntry records one set entry, overwriting any previous entry for
// the same (day, slot, set index).
func (db *DB) UpsertSetEntry(ctx context.Context, e SetEntryRow) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO set_entries (day_date, exercise_slot, set_index, weight, achieved_rpe, completed)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (day_date, exercise_slot, set_index) DO UPDATE
		 SET weight = EXCLUDED.weight,
		     achieved_rpe = EXCLUDED.achieved_rpe,
		     completed = EXCLUDED.completed,
		     updated_at = now()`,
		dateToTime(e.DayDate), e.ExerciseSlot, e.SetIndex, e.Weight, e.AchievedRPE, e.Completed)
	if err != nil {
		return fmt.Errorf("upserting set entry: %w", err)
	}
	return nil
}

// SetEntries returns all journaled entries ordered by day, slot, set index.
func (db *DB) SetEntries(ctx context.Context) ([]SetEntryRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT day_date, exercise_slot, set_index, weight, achieved_rpe, completed
		 FROM set_entries
		 ORDER BY day_date, exercise_slot, set_index`)
	if err != nil {
		return nil, fmt.Errorf("querying set entries: %w", err)
	}
	defer rows.Close()

	var result []SetEntryRow
	for rows.Next() {
		var (
			e   SetEntryRow
			day time.Time
		)
		if err := rows.Scan(&day, &e.ExerciseSlot, &e.SetIndex, &e.Weight, &e.AchievedRPE, &e.Completed); err != nil {
			return nil, fmt.Errorf("scanning set entry: %w", err)
		}
		e.DayDate = models.DateOf(day)
		result = append(result, e)
	}
	return result, rows.Err()
}

// DeleteSetEntries wipes the journal. Called when the active plan is cleared
// or replaced, since a rebuild discards all entered data.
func (db *DB) DeleteSetEntries(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, `DELETE FROM set_entries`); err != nil {
		return fmt.Errorf("deleting set entries: %w", err)
	}
	return nil
}
