// Package analytics derives the reporting views from the hourly occupancy
// tables. All functions are pure: they read a row slice and return a new
// table, keyed and sorted deterministically.
package analytics

import (
	"sort"
	"time"

	"charging_occupancy/internal/models"
)

// Defaults for the configurable analytics parameters.
const (
	DefaultTopN              = 5
	DefaultPressureThreshold = 0.9
	DefaultGapHours          = 24
)

// DailyUtilization computes the mean occupancy rate per (entity, day).
// One row per (entity, date) pair with at least one hourly row that day,
// sorted by entity then date.
func DailyUtilization(rows []models.HourlyRow) []models.DailyUtilization {
	type key struct {
		entity string
		day    int64
	}
	sums := make(map[key]float64)
	counts := make(map[key]int)
	for _, r := range rows {
		k := key{entity: r.EntityID, day: r.Hour.Truncate(24 * time.Hour).Unix()}
		sums[k] += r.OccupancyRate
		counts[k]++
	}

	out := make([]models.DailyUtilization, 0, len(sums))
	for k, sum := range sums {
		out = append(out, models.DailyUtilization{
			EntityID:         k.entity,
			Date:             time.Unix(k.day, 0).UTC(),
			AvgOccupancyRate: sum / float64(counts[k]),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EntityID != out[j].EntityID {
			return out[i].EntityID < out[j].EntityID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// PeakPeriods selects each entity's top-N hours by occupancy rate. The sort
// is stable (entity ascending, rate descending, ties kept in input row
// order) so repeated runs over the same table produce the same selection.
// Entities with fewer than topN rows contribute all of them.
func PeakPeriods(rows []models.HourlyRow, topN int) []models.PeakHour {
	sorted := make([]models.HourlyRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].EntityID != sorted[j].EntityID {
			return sorted[i].EntityID < sorted[j].EntityID
		}
		return sorted[i].OccupancyRate > sorted[j].OccupancyRate
	})

	out := make([]models.PeakHour, 0, len(sorted))
	taken := 0
	for i, r := range sorted {
		if i > 0 && r.EntityID != sorted[i-1].EntityID {
			taken = 0
		}
		if taken >= topN {
			continue
		}
		taken++
		out = append(out, models.PeakHour{
			EntityID:      r.EntityID,
			Hour:          r.Hour,
			OccupancyRate: r.OccupancyRate,
		})
	}
	return out
}

// HourOfDayProfile averages the occupancy rate per wall-clock hour across
// all entities. At most 24 rows, sorted by hour of day.
func HourOfDayProfile(rows []models.HourlyRow) []models.HourOfDayRate {
	var sums [24]float64
	var counts [24]int
	for _, r := range rows {
		h := r.Hour.Hour()
		sums[h] += r.OccupancyRate
		counts[h]++
	}

	out := make([]models.HourOfDayRate, 0, 24)
	for h := 0; h < 24; h++ {
		if counts[h] == 0 {
			continue
		}
		out = append(out, models.HourOfDayRate{
			HourOfDay:        h,
			AvgOccupancyRate: sums[h] / float64(counts[h]),
		})
	}
	return out
}

// CapacityPressure counts, per entity, the hours at or above the
// high-pressure threshold. Only entities with at least one hourly row
// appear, so the ratio denominator is always positive. Sorted by entity.
func CapacityPressure(rows []models.HourlyRow, threshold float64) []models.CapacityPressure {
	totals := make(map[string]int)
	high := make(map[string]int)
	for _, r := range rows {
		totals[r.EntityID]++
		if r.OccupancyRate >= threshold {
			high[r.EntityID]++
		}
	}

	out := make([]models.CapacityPressure, 0, len(totals))
	for entity, total := range totals {
		out = append(out, models.CapacityPressure{
			EntityID:          entity,
			TotalHours:        total,
			HighPressureHours: high[entity],
			HighPressureRatio: float64(high[entity]) / float64(total),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntityID < out[j].EntityID })
	return out
}
