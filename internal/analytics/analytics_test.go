package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charging_occupancy/internal/models"
)

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// row builds an hourly row h hours after day0 with the given rate.
func row(entity string, h int, rate float64) models.HourlyRow {
	return models.HourlyRow{
		EntityID:      entity,
		Hour:          day0.Add(time.Duration(h) * time.Hour),
		Total:         1,
		OccupancyRate: rate,
	}
}

func TestDailyUtilization(t *testing.T) {
	t.Parallel()

	rows := []models.HourlyRow{
		row("S1", 0, 0.2),
		row("S1", 5, 0.4),
		row("S1", 24, 1.0), // next day
		row("S2", 1, 0.5),
	}
	got := DailyUtilization(rows)

	require.Len(t, got, 3)
	assert.Equal(t, "S1", got[0].EntityID)
	assert.True(t, got[0].Date.Equal(day0))
	assert.InDelta(t, 0.3, got[0].AvgOccupancyRate, 1e-12)
	assert.True(t, got[1].Date.Equal(day0.AddDate(0, 0, 1)))
	assert.InDelta(t, 1.0, got[1].AvgOccupancyRate, 1e-12)
	assert.Equal(t, "S2", got[2].EntityID)
	assert.InDelta(t, 0.5, got[2].AvgOccupancyRate, 1e-12)
}

func TestPeakPeriods(t *testing.T) {
	t.Parallel()

	rows := []models.HourlyRow{
		row("S1", 0, 0.1),
		row("S1", 1, 0.9),
		row("S1", 2, 0.5),
		row("S1", 3, 0.7),
		row("S2", 0, 0.3),
	}

	got := PeakPeriods(rows, 2)
	require.Len(t, got, 3)

	// S1 top 2 by rate descending
	assert.Equal(t, "S1", got[0].EntityID)
	assert.InDelta(t, 0.9, got[0].OccupancyRate, 1e-12)
	assert.InDelta(t, 0.7, got[1].OccupancyRate, 1e-12)
	// S2 has fewer rows than N and contributes all of them
	assert.Equal(t, "S2", got[2].EntityID)

	// selection is a subset of the input rows
	hours := map[string]bool{}
	for _, r := range rows {
		hours[r.EntityID+r.Hour.String()] = true
	}
	for _, p := range got {
		assert.True(t, hours[p.EntityID+p.Hour.String()], "peak %v not in input", p)
	}
}

func TestPeakPeriods_StableTies(t *testing.T) {
	t.Parallel()

	rows := []models.HourlyRow{
		row("S1", 0, 0.5),
		row("S1", 1, 0.5),
		row("S1", 2, 0.5),
	}
	got := PeakPeriods(rows, 2)

	require.Len(t, got, 2)
	// ties keep input row order
	assert.True(t, got[0].Hour.Equal(rows[0].Hour))
	assert.True(t, got[1].Hour.Equal(rows[1].Hour))
}

func TestPeakPeriods_LengthProperty(t *testing.T) {
	t.Parallel()

	var rows []models.HourlyRow
	perEntity := map[string]int{"A": 3, "B": 7, "C": 5}
	for entity, n := range perEntity {
		for h := 0; h < n; h++ {
			rows = append(rows, row(entity, h, float64(h)/10))
		}
	}

	got := PeakPeriods(rows, 5)
	counts := map[string]int{}
	for _, p := range got {
		counts[p.EntityID]++
	}
	assert.Equal(t, map[string]int{"A": 3, "B": 5, "C": 5}, counts)
}

func TestHourOfDayProfile(t *testing.T) {
	t.Parallel()

	rows := []models.HourlyRow{
		row("S1", 8, 0.2),
		row("S2", 8, 0.4), // same wall-clock hour, different entity
		row("S1", 32, 0.6), // 08:00 next day
		row("S1", 23, 1.0),
	}
	got := HourOfDayProfile(rows)

	require.Len(t, got, 2)
	assert.Equal(t, 8, got[0].HourOfDay)
	assert.InDelta(t, 0.4, got[0].AvgOccupancyRate, 1e-12)
	assert.Equal(t, 23, got[1].HourOfDay)

	for _, r := range got {
		assert.GreaterOrEqual(t, r.HourOfDay, 0)
		assert.LessOrEqual(t, r.HourOfDay, 23)
	}
}

func TestHourOfDayProfile_AtMost24Rows(t *testing.T) {
	t.Parallel()

	var rows []models.HourlyRow
	for h := 0; h < 24*14; h++ {
		rows = append(rows, row("S1", h, 0.5))
	}
	got := HourOfDayProfile(rows)
	assert.Len(t, got, 24)
}

func TestCapacityPressure(t *testing.T) {
	t.Parallel()

	rates := []float64{0.95, 0.92, 0.5, 0.1}
	var rows []models.HourlyRow
	for h, r := range rates {
		rows = append(rows, row("S1", h, r))
	}
	rows = append(rows, row("S2", 0, 0.9)) // threshold is inclusive

	got := CapacityPressure(rows, 0.9)
	require.Len(t, got, 2)

	assert.Equal(t, models.CapacityPressure{
		EntityID:          "S1",
		TotalHours:        4,
		HighPressureHours: 2,
		HighPressureRatio: 0.5,
	}, got[0])
	assert.Equal(t, 1, got[1].HighPressureHours)
	assert.Equal(t, 1.0, got[1].HighPressureRatio)
}
