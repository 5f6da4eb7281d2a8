// Package aggregate buckets canonical records into hourly occupancy counts
// per entity. Rows exist only for (entity, hour) pairs that saw at least one
// record; a missing row means "no data", not "zero occupancy".
package aggregate

import (
	"sort"
	"time"

	"charging_occupancy/internal/models"
)

// Granularity selects the aggregation entity.
type Granularity int

const (
	ByStation Granularity = iota
	ByConnector
)

func (g Granularity) entity(r models.Record) string {
	if g == ByConnector {
		return r.ConnectorID
	}
	return r.StationID
}

// HourStart floors a UTC instant to the top of its hour.
func HourStart(t time.Time) time.Time {
	return t.UTC().Truncate(time.Hour)
}

type bucketKey struct {
	entity string
	hour   int64 // unix seconds of the hour start
}

// Hourly groups records by (entity, hour, status) and pivots the status
// counts into one row per (entity, hour). Rows come back sorted by entity
// then hour, so downstream segmentation is deterministic regardless of
// input order. Every row satisfies Total >= Charging >= 0 and Total > 0.
func Hourly(records []models.Record, g Granularity) []models.HourlyRow {
	buckets := make(map[bucketKey]map[models.Status]int)
	for _, r := range records {
		key := bucketKey{entity: g.entity(r), hour: HourStart(r.Timestamp).Unix()}
		counts := buckets[key]
		if counts == nil {
			counts = make(map[models.Status]int)
			buckets[key] = counts
		}
		counts[r.Status]++
	}

	rows := make([]models.HourlyRow, 0, len(buckets))
	for key, counts := range buckets {
		total := 0
		for _, n := range counts {
			total += n
		}
		charging := counts[models.StatusCharging]
		rows = append(rows, models.HourlyRow{
			EntityID:      key.entity,
			Hour:          time.Unix(key.hour, 0).UTC(),
			Counts:        counts,
			Total:         total,
			Charging:      charging,
			OccupancyRate: float64(charging) / float64(total),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].EntityID != rows[j].EntityID {
			return rows[i].EntityID < rows[j].EntityID
		}
		return rows[i].Hour.Before(rows[j].Hour)
	})
	return rows
}

// WithRefinedRate recomputes each row's occupancy rate against the
// capacity-aware denominator charging + available. Rows where that
// denominator is zero are dropped, not zero-filled, so the refined table can
// cover fewer (entity, hour) pairs than the baseline one.
func WithRefinedRate(rows []models.HourlyRow) []models.HourlyRow {
	refined := make([]models.HourlyRow, 0, len(rows))
	for _, row := range rows {
		denom := row.Charging + row.Counts[models.StatusAvailable]
		if denom == 0 {
			continue
		}
		row.OccupancyRate = float64(row.Charging) / float64(denom)
		refined = append(refined, row)
	}
	return refined
}
