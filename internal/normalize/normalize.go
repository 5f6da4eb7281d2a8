// Package normalize turns raw decoded status events into canonical records.
// Per-record defects never abort a batch: they are counted in a Tally and
// surfaced through the missing-value report.
package normalize

import (
	"time"

	"charging_occupancy/internal/models"
)

// Tally is the typed skip-reason count for one batch. Total counts canonical
// records before status filtering; DecodeFailure is filled by the source
// layer, everything else by Normalize.
type Tally struct {
	Total         int
	Unknown       int
	MissingField  int
	BadTimestamp  int
	DecodeFailure int
	// ByStatus counts canonical records per status, UNKNOWN included,
	// before the exclusion step.
	ByStatus map[models.Status]int
}

// UnknownPercent is the share of UNKNOWN records among canonical records,
// in percent. Zero when the batch is empty.
func (t Tally) UnknownPercent() float64 {
	if t.Total == 0 {
		return 0
	}
	return float64(t.Unknown) / float64(t.Total) * 100
}

// timestampLayouts are tried in order. Zone-aware forms first; naive forms
// are taken as UTC, matching the upstream feed convention.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses an ISO-8601-ish timestamp into a UTC instant.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// connectorID resolves the two feed vocabularies for the connector field.
func connectorID(e models.RawEvent) *string {
	if e.ConnectorID != nil && *e.ConnectorID != "" {
		return e.ConnectorID
	}
	return e.EvseID
}

func missing(s *string) bool {
	return s == nil || *s == ""
}

// Normalize maps raw events onto canonical records, dropping events with a
// missing canonical field or an unparseable timestamp, and excluding
// UNKNOWN-status records after counting them. Input order is irrelevant
// downstream; output order follows input order.
func Normalize(events []models.RawEvent) ([]models.Record, Tally) {
	tally := Tally{ByStatus: make(map[models.Status]int)}
	records := make([]models.Record, 0, len(events))

	for _, e := range events {
		conn := connectorID(e)
		if missing(e.StationID) || missing(conn) || missing(e.Status) || missing(e.Timestamp) {
			tally.MissingField++
			continue
		}
		ts, ok := ParseTimestamp(*e.Timestamp)
		if !ok {
			tally.BadTimestamp++
			continue
		}

		status := models.ParseStatus(*e.Status)
		tally.Total++
		tally.ByStatus[status]++
		if status == models.StatusUnknown {
			tally.Unknown++
			continue
		}

		records = append(records, models.Record{
			StationID:   *e.StationID,
			ConnectorID: *conn,
			Status:      status,
			Timestamp:   ts,
		})
	}
	return records, tally
}
