// Package artifact serializes pipeline outputs as flat tabular files (CSV)
// plus the plain-text exclusion report. All tables carry a fixed column
// schema; the status columns come from models.StatusColumns, never from the
// vocabulary observed in a particular run.
package artifact

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"charging_occupancy/internal/models"
	"charging_occupancy/internal/normalize"
)

// Output artifact file names.
const (
	FileStatusSummary    = "status_summary.csv"
	FileStationHourly    = "occupancy_station_hourly.csv"
	FileConnectorHourly  = "occupancy_connector_hourly.csv"
	FileUnknownReport    = "unknown_analysis.txt"
	FileDailyUtilization = "daily_utilization_trends.csv"
	FilePeakPeriods      = "peak_periods_station.csv"
	FileGlobalPeak       = "global_peak_hour_of_day.csv"
	FileCapacityPressure = "capacity_pressure_station.csv"
	FileDowntime         = "reliability_connector_downtime.csv"
)

const (
	hourLayout = time.RFC3339
	dateLayout = "2006-01-02"
)

// Refined derives the refined-variant file name: "x.csv" -> "x_refined.csv".
func Refined(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_refined" + ext
}

// Writer writes artifacts into one output directory.
type Writer struct {
	dir string
}

// NewWriter ensures the output directory exists and returns a Writer for it.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %q: %w", dir, err)
	}
	return &Writer{dir: dir}, nil
}

func (w *Writer) writeCSV(name string, header []string, rows [][]string) error {
	f, err := os.Create(filepath.Join(w.dir, name))
	if err != nil {
		return fmt.Errorf("create artifact %q: %w", name, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write artifact %q: %w", name, err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write artifact %q: %w", name, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush artifact %q: %w", name, err)
	}
	return f.Close()
}

func formatRate(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// WriteReport writes a plain-text artifact verbatim.
func (w *Writer) WriteReport(name, content string) error {
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report %q: %w", name, err)
	}
	return nil
}

// WriteStatusSummary writes the per-status record counts, UNKNOWN included,
// ordered by count descending then status ascending.
func (w *Writer) WriteStatusSummary(name string, tally normalize.Tally) error {
	type entry struct {
		status models.Status
		count  int
	}
	entries := make([]entry, 0, len(tally.ByStatus))
	for status, count := range tally.ByStatus {
		entries = append(entries, entry{status: status, count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].status < entries[j].status
	})

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{string(e.status), strconv.Itoa(e.count)})
	}
	return w.writeCSV(name, []string{"status", "count"}, rows)
}

// WriteHourlyTable writes an hourly count table: one status column per
// canonical status, then total, charging and the occupancy rate.
func (w *Writer) WriteHourlyTable(name, entityColumn string, rows []models.HourlyRow) error {
	header := []string{entityColumn, "hour"}
	for _, s := range models.StatusColumns {
		header = append(header, string(s))
	}
	header = append(header, "total", "charging", "occupancy_rate")

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{r.EntityID, r.Hour.Format(hourLayout)}
		for _, s := range models.StatusColumns {
			row = append(row, strconv.Itoa(r.Counts[s]))
		}
		row = append(row,
			strconv.Itoa(r.Total),
			strconv.Itoa(r.Charging),
			formatRate(r.OccupancyRate),
		)
		out = append(out, row)
	}
	return w.writeCSV(name, header, out)
}

// WriteDailyUtilization writes the per-station daily trend table.
func (w *Writer) WriteDailyUtilization(name string, rows []models.DailyUtilization) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.EntityID, r.Date.Format(dateLayout), formatRate(r.AvgOccupancyRate)})
	}
	return w.writeCSV(name, []string{"station_id", "date", "avg_occupancy_rate"}, out)
}

// WritePeakPeriods writes the per-station top-N peak hour table.
func (w *Writer) WritePeakPeriods(name string, rows []models.PeakHour) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.EntityID, r.Hour.Format(hourLayout), formatRate(r.OccupancyRate)})
	}
	return w.writeCSV(name, []string{"station_id", "hour", "occupancy_rate"}, out)
}

// WriteHourOfDayProfile writes the global hour-of-day profile.
func (w *Writer) WriteHourOfDayProfile(name string, rows []models.HourOfDayRate) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{strconv.Itoa(r.HourOfDay), formatRate(r.AvgOccupancyRate)})
	}
	return w.writeCSV(name, []string{"hour_of_day", "avg_occupancy_rate"}, out)
}

// WriteCapacityPressure writes the per-station capacity pressure table.
func (w *Writer) WriteCapacityPressure(name string, rows []models.CapacityPressure) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.EntityID,
			strconv.Itoa(r.TotalHours),
			strconv.Itoa(r.HighPressureHours),
			formatRate(r.HighPressureRatio),
		})
	}
	return w.writeCSV(name, []string{"station_id", "total_hours", "high_pressure_hours", "high_pressure_ratio"}, out)
}

// WriteDowntime writes the per-connector downtime summary table.
func (w *Writer) WriteDowntime(name string, rows []models.DowntimeSummary) error {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.ConnectorID,
			strconv.Itoa(r.NumDowntimeEvents),
			strconv.Itoa(r.TotalDowntimeHours),
		})
	}
	return w.writeCSV(name, []string{"connector_id", "num_downtime_events", "total_downtime_hours"}, out)
}
