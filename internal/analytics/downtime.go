package analytics

import (
	"sort"

	"charging_occupancy/internal/models"
)

// DetectDowntime finds, per connector, maximal contiguous runs of
// zero-charging hours in the connector-hourly table and keeps the runs of at
// least gapHours hours. Runs are segmented by adjacency in the hour-sorted
// row sequence, not by calendar continuity: hours with no row at all do not
// break a run, only an intervening row with charging activity does. Every
// connector present in the input appears in the output, with 0/0 when none
// of its runs qualify; connectors with no rows are absent.
func DetectDowntime(rows []models.HourlyRow, gapHours int) []models.DowntimeSummary {
	byConnector := make(map[string][]models.HourlyRow)
	order := make([]string, 0)
	for _, r := range rows {
		if _, seen := byConnector[r.EntityID]; !seen {
			order = append(order, r.EntityID)
		}
		byConnector[r.EntityID] = append(byConnector[r.EntityID], r)
	}
	sort.Strings(order)

	out := make([]models.DowntimeSummary, 0, len(order))
	for _, connector := range order {
		seq := byConnector[connector]
		sort.SliceStable(seq, func(i, j int) bool { return seq[i].Hour.Before(seq[j].Hour) })

		events, hours := zeroRuns(seq, gapHours)
		out = append(out, models.DowntimeSummary{
			ConnectorID:        connector,
			NumDowntimeEvents:  events,
			TotalDowntimeHours: hours,
		})
	}
	return out
}

// zeroRuns walks one connector's hour-sorted rows once, closing a run every
// time the zero/non-zero flag flips, and tallies the zero runs of at least
// gapHours rows.
func zeroRuns(seq []models.HourlyRow, gapHours int) (events, hours int) {
	runLen := 0
	runZero := false

	flush := func() {
		if runZero && runLen >= gapHours {
			events++
			hours += runLen
		}
	}

	for i, r := range seq {
		isZero := r.Charging == 0
		if i == 0 || isZero != runZero {
			flush()
			runZero = isZero
			runLen = 0
		}
		runLen++
	}
	flush()
	return events, hours
}
