package source

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"charging_occupancy/internal/models"
)

const sqliteDriverName = "sqlite"

// OpenSnapshot opens a read-only handle on a decoded-event snapshot
// database produced by the external collector.
func OpenSnapshot(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set PRAGMA busy_timeout=5000: %w", err)
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// SQLiteSource reads raw events from the collector's raw_events snapshot
// table. NULL columns surface as nil fields for the normalizer to drop.
type SQLiteSource struct {
	db    *sql.DB
	limit int
}

// NewSQLiteSource wraps an open snapshot handle. limit caps the number of
// rows read when positive.
func NewSQLiteSource(db *sql.DB, limit int) *SQLiteSource {
	return &SQLiteSource{db: db, limit: limit}
}

func (s *SQLiteSource) Load(ctx context.Context) ([]models.RawEvent, int, error) {
	q := `SELECT station_id, connector_id, status, timestamp FROM raw_events ORDER BY timestamp ASC`
	args := make([]any, 0, 1)
	if s.limit > 0 {
		q += " LIMIT ?"
		args = append(args, s.limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query raw_events: %w", err)
	}
	defer rows.Close()

	var events []models.RawEvent
	for rows.Next() {
		var station, connector, status, ts sql.NullString
		if err := rows.Scan(&station, &connector, &status, &ts); err != nil {
			return nil, 0, fmt.Errorf("scan raw_events row: %w", err)
		}
		events = append(events, models.RawEvent{
			StationID:   nullable(station),
			ConnectorID: nullable(connector),
			Status:      nullable(status),
			Timestamp:   nullable(ts),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate raw_events: %w", err)
	}
	return events, 0, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
