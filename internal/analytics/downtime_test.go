package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"charging_occupancy/internal/models"
)

// chargingRows builds consecutive hourly rows for one connector from a
// charging-count sequence.
func chargingRows(connector string, start time.Time, counts []int) []models.HourlyRow {
	rows := make([]models.HourlyRow, 0, len(counts))
	for i, n := range counts {
		total := n
		if total == 0 {
			total = 1 // bucket exists, just without charging activity
		}
		rows = append(rows, models.HourlyRow{
			EntityID: connector,
			Hour:     start.Add(time.Duration(i) * time.Hour),
			Total:    total,
			Charging: n,
		})
	}
	return rows
}

func TestDetectDowntime_ThresholdScenario(t *testing.T) {
	t.Parallel()

	// 26 consecutive hours: 3 zero hours, a charging hour, 21 zero hours,
	// a charging hour.
	counts := make([]int, 26)
	counts[3] = 5
	counts[25] = 3
	rows := chargingRows("C1", day0, counts)

	got := DetectDowntime(rows, 24)
	require.Len(t, got, 1)
	assert.Equal(t, models.DowntimeSummary{ConnectorID: "C1"}, got[0], "no run reaches 24 hours")

	got = DetectDowntime(rows, 20)
	require.Len(t, got, 1)
	assert.Equal(t, models.DowntimeSummary{
		ConnectorID:        "C1",
		NumDowntimeEvents:  1,
		TotalDowntimeHours: 21,
	}, got[0])
}

func TestDetectDowntime_AllZeroIsOneRun(t *testing.T) {
	t.Parallel()

	rows := chargingRows("C1", day0, make([]int, 30))
	got := DetectDowntime(rows, 24)

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].NumDowntimeEvents)
	assert.Equal(t, 30, got[0].TotalDowntimeHours)
}

func TestDetectDowntime_Idempotence(t *testing.T) {
	t.Parallel()

	// Applying the detector to its own zero-activity-only input is stable:
	// exactly one run whose length equals the original total.
	counts := make([]int, 60)
	counts[25] = 2 // splits history into a 25-run and a 34-run
	rows := chargingRows("C1", day0, counts)

	first := DetectDowntime(rows, 24)
	require.Len(t, first, 1)
	assert.Equal(t, 2, first[0].NumDowntimeEvents)
	assert.Equal(t, 59, first[0].TotalDowntimeHours)

	var zeroOnly []models.HourlyRow
	for _, r := range rows {
		if r.Charging == 0 {
			zeroOnly = append(zeroOnly, r)
		}
	}
	second := DetectDowntime(zeroOnly, 24)
	require.Len(t, second, 1)
	assert.Equal(t, 1, second[0].NumDowntimeEvents)
	assert.Equal(t, first[0].TotalDowntimeHours, second[0].TotalDowntimeHours)
}

func TestDetectDowntime_GapsJoinRuns(t *testing.T) {
	t.Parallel()

	// Adjacency is row adjacency in the hour-sorted table: a 10-day hole in
	// the data does not split the surrounding zero runs.
	rows := chargingRows("C1", day0, make([]int, 12))
	rows = append(rows, chargingRows("C1", day0.AddDate(0, 0, 10), make([]int, 12))...)

	got := DetectDowntime(rows, 24)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].NumDowntimeEvents)
	assert.Equal(t, 24, got[0].TotalDowntimeHours)
}

func TestDetectDowntime_UnsortedInputAndMultipleConnectors(t *testing.T) {
	t.Parallel()

	c1 := chargingRows("C1", day0, make([]int, 25))
	c2 := chargingRows("C2", day0, []int{1, 2, 3})

	// interleave and shuffle hour order deterministically
	mixed := make([]models.HourlyRow, 0, len(c1)+len(c2))
	for i := len(c1) - 1; i >= 0; i-- {
		mixed = append(mixed, c1[i])
	}
	mixed = append(mixed, c2[2], c2[0], c2[1])

	got := DetectDowntime(mixed, 24)
	require.Len(t, got, 2)

	assert.Equal(t, "C1", got[0].ConnectorID)
	assert.Equal(t, 1, got[0].NumDowntimeEvents)
	assert.Equal(t, 25, got[0].TotalDowntimeHours)

	// connectors present in the table always get a row, 0/0 when nothing
	// qualifies; connectors with no rows at all are absent
	assert.Equal(t, models.DowntimeSummary{ConnectorID: "C2"}, got[1])
}

func TestDetectDowntime_EmptyInput(t *testing.T) {
	t.Parallel()

	got := DetectDowntime(nil, 24)
	assert.Empty(t, got)
}
