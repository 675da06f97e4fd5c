package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/escbch/TrainingApp-2/internal/models"
)

// Archive is a local SQLite snapshot of the schedule's set entries, written
// by the export tool so training data survives a schedule rebuild.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens (or creates) the SQLite archive at the given path.
func OpenArchive(path string) (*Archive, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating archive dir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS set_archive (
		day_date      TEXT NOT NULL,
		exercise_name TEXT NOT NULL,
		set_index     INTEGER NOT NULL,
		reps          INTEGER NOT NULL,
		target_rpe    REAL,
		weight        REAL,
		achieved_rpe  REAL,
		completed     INTEGER NOT NULL DEFAULT 0,
		exported_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (day_date, exercise_name, set_index)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive table: %w", err)
	}

	return &Archive{db: db}, nil
}

// WriteDay archives every set of one training day. Re-exporting a day
// overwrites its previous rows, so repeated runs stay idempotent.
func (a *Archive) WriteDay(day models.TrainingDay) (int, error) {
	written := 0
	for _, ex := range day.Exercises {
		for _, set := range ex.Sets {
			_, err := a.db.Exec(
				`INSERT OR REPLACE INTO set_archive
				 (day_date, exercise_name, set_index, reps, target_rpe, weight, achieved_rpe, completed)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				day.Date.String(), ex.Name, set.SetIndex, set.Reps,
				set.TargetRPE, set.Weight, set.AchievedRPE, set.Completed,
			)
			if err != nil {
				return written, fmt.Errorf("archiving %s %s set %d: %w", day.Date, ex.Name, set.SetIndex, err)
			}
			written++
		}
	}
	return written, nil
}

// CountRows returns the number of archived sets.
func (a *Archive) CountRows() (int, error) {
	var n int
	if err := a.db.QueryRow(`SELECT COUNT(*) FROM set_archive`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Close closes the archive database.
func (a *Archive) Close() error {
	return a.db.Close()
}
