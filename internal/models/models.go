package models

import "time"

// RawEvent is one decoded status report as produced by an external dump
// decoder. Every field is nullable; validation happens in the normalizer.
// ConnectorID and EvseID are the same field under two feed vocabularies —
// older dumps say evse_id.
type RawEvent struct {
	StationID   *string `json:"station_id"`
	ConnectorID *string `json:"connector_id"`
	EvseID      *string `json:"evse_id,omitempty"`
	Status      *string `json:"status"`
	Timestamp   *string `json:"timestamp"`
}

// Record is a fully populated, immutable status observation. All fields are
// non-zero and Timestamp is a UTC instant.
type Record struct {
	StationID   string    `json:"station_id"`
	ConnectorID string    `json:"connector_id"`
	Status      Status    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

// HourlyRow is one (entity, hour) bucket of the occupancy count table.
// Counts is keyed by the canonical status domain; Total is the row-wise sum
// and Charging the CHARGING count (0 when the bucket saw none).
type HourlyRow struct {
	EntityID      string         `json:"entity_id"`
	Hour          time.Time      `json:"hour"`
	Counts        map[Status]int `json:"counts"`
	Total         int            `json:"total"`
	Charging      int            `json:"charging"`
	OccupancyRate float64        `json:"occupancy_rate"`
}

// DailyUtilization is the mean occupancy rate of one entity over one day.
type DailyUtilization struct {
	EntityID         string    `json:"entity_id"`
	Date             time.Time `json:"date"`
	AvgOccupancyRate float64   `json:"avg_occupancy_rate"`
}

// PeakHour is one of an entity's top-N hours by occupancy rate.
type PeakHour struct {
	EntityID      string    `json:"entity_id"`
	Hour          time.Time `json:"hour"`
	OccupancyRate float64   `json:"occupancy_rate"`
}

// HourOfDayRate is the mean occupancy rate across all entities for one
// wall-clock hour (0-23).
type HourOfDayRate struct {
	HourOfDay        int     `json:"hour_of_day"`
	AvgOccupancyRate float64 `json:"avg_occupancy_rate"`
}

// CapacityPressure summarizes how often an entity runs at or above the
// high-pressure occupancy threshold.
type CapacityPressure struct {
	EntityID          string  `json:"entity_id"`
	TotalHours        int     `json:"total_hours"`
	HighPressureHours int     `json:"high_pressure_hours"`
	HighPressureRatio float64 `json:"high_pressure_ratio"`
}

// DowntimeSummary reports prolonged zero-charging runs for one connector.
type DowntimeSummary struct {
	ConnectorID        string `json:"connector_id"`
	NumDowntimeEvents  int    `json:"num_downtime_events"`
	TotalDowntimeHours int    `json:"total_downtime_hours"`
}
