package telemetry

import (
	"database/sql"

	"codeberg.org/mutker/powerctl/internal/errors"
)

// initSchema initializes the database schema for transition history
func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS transitions (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            timestamp INTEGER NOT NULL,
            profile TEXT NOT NULL,
            battery_percent INTEGER,
            on_ac INTEGER,
            source TEXT NOT NULL
        );
        CREATE INDEX IF NOT EXISTS idx_transitions_timestamp
            ON transitions (timestamp)
    `)
	if err != nil {
		return errors.Wrap(ErrStorageInit, err)
	}

	return nil
}
