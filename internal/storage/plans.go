package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/escbch/TrainingApp-2/internal/models"
	"github.com/jackc/pgx/v5"
)

// SaveActivePlan upserts the single active-plan row. Weekdays are stored as
// ISO numbers (1=Monday .. 7=Sunday).
func (db *DB) SaveActivePlan(ctx context.Context, ap models.ActivePlan) error {
	iso := ap.Weekdays.ISO()
	weekdays := make([]int32, len(iso))
	for i, n := range iso {
		weekdays[i] = int32(n)
	}

	_, err := db.Pool.Exec(ctx,
		`INSERT INTO active_plan (id, plan_id, start_date, weekdays)
		 VALUES (1, $1, $2, $3)
		 ON CONFLICT (id) DO UPDATE
		 SET plan_id = EXCLUDED.plan_id,
		     start_date = EXCLUDED.start_date,
		     weekdays = EXCLUDED.weekdays,
		     activated_at = now()`,
		ap.PlanID, dateToTime(ap.StartDate), weekdays)
	if err != nil {
		return fmt.Errorf("saving active plan: %w", err)
	}
	return nil
}

// GetActivePlan returns the stored active plan, or nil when none is set.
func (db *DB) GetActivePlan(ctx context.Context) (*models.ActivePlan, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT plan_id, start_date, weekdays FROM active_plan WHERE id = 1`)

	var (
		planID   string
		start    time.Time
		weekdays []int32
	)
	if err := row.Scan(&planID, &start, &weekdays); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying active plan: %w", err)
	}

	iso := make([]int, len(weekdays))
	for i, n := range weekdays {
		iso[i] = int(n)
	}
	set, err := models.WeekdaySetFromISO(iso)
	if err != nil {
		return nil, fmt.Errorf("decoding stored weekdays: %w", err)
	}

	return &models.ActivePlan{
		PlanID:    planID,
		StartDate: models.DateOf(start),
		Weekdays:  set,
	}, nil
}

// ClearActivePlan removes the active-plan row.
func (db *DB) ClearActivePlan(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, `DELETE FROM active_plan WHERE id = 1`); err != nil {
		return fmt.Errorf("clearing active plan: %w", err)
	}
	return nil
}

func dateToTime(d models.Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}
