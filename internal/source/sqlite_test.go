package source

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return ctx
}

const snapshotQuery = `SELECT station_id, connector_id, status, timestamp FROM raw_events ORDER BY timestamp ASC`

func TestSQLiteSource_Load(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	rows := sqlmock.NewRows([]string{"station_id", "connector_id", "status", "timestamp"}).
		AddRow("S1", "C1", "CHARGING", "2024-01-01T08:00:00Z").
		AddRow("S1", nil, "AVAILABLE", "2024-01-01T08:05:00Z").
		AddRow(nil, nil, nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta(snapshotQuery)).WillReturnRows(rows)

	src := NewSQLiteSource(db, 0)
	events, failures, err := src.Load(testCtx(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if failures != 0 {
		t.Errorf("expected 0 decode failures, got %d", failures)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}

	if events[0].StationID == nil || *events[0].StationID != "S1" {
		t.Errorf("unexpected station: %v", events[0].StationID)
	}
	if events[0].Status == nil || *events[0].Status != "CHARGING" {
		t.Errorf("unexpected status: %v", events[0].Status)
	}
	// NULL columns surface as nil pointers for the normalizer
	if events[1].ConnectorID != nil {
		t.Errorf("expected nil connector, got %v", *events[1].ConnectorID)
	}
	if events[2].StationID != nil || events[2].Status != nil || events[2].Timestamp != nil {
		t.Errorf("expected fully nil event, got %+v", events[2])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestSQLiteSource_LoadWithLimit(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	mock.ExpectQuery(regexp.QuoteMeta(snapshotQuery+" LIMIT ?")).
		WithArgs(100).
		WillReturnRows(sqlmock.NewRows([]string{"station_id", "connector_id", "status", "timestamp"}))

	src := NewSQLiteSource(db, 100)
	events, _, err := src.Load(testCtx(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("expected no events, got %d", len(events))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("mock expectations: %v", err)
	}
}

func TestSQLiteSource_QueryError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock new: %v", err)
	}
	defer func(db *sql.DB) {
		_ = db.Close()
	}(db)

	dbErr := errors.New("disk I/O error")
	mock.ExpectQuery(regexp.QuoteMeta(snapshotQuery)).WillReturnError(dbErr)

	src := NewSQLiteSource(db, 0)
	if _, _, err := src.Load(testCtx(t)); !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}
