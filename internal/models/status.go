package models

import "strings"

// Status is the canonical connector status vocabulary.
type Status string

const (
	StatusAvailable  Status = "AVAILABLE"
	StatusCharging   Status = "CHARGING"
	StatusOccupied   Status = "OCCUPIED"
	StatusReserved   Status = "RESERVED"
	StatusOutOfOrder Status = "OUTOFORDER"
	StatusUnknown    Status = "UNKNOWN"
	// StatusOther buckets any vocabulary outside the enumerated domain so
	// count tables keep the same schema across runs with different feeds.
	StatusOther Status = "OTHER"
)

// StatusColumns fixes the column set and order of the hourly count tables.
// UNKNOWN is absent: those records never reach aggregation.
var StatusColumns = []Status{
	StatusAvailable,
	StatusCharging,
	StatusOccupied,
	StatusReserved,
	StatusOutOfOrder,
	StatusOther,
}

// ParseStatus maps a raw status string onto the canonical domain.
// Matching is case-insensitive and whitespace-tolerant.
func ParseStatus(raw string) Status {
	switch s := Status(strings.ToUpper(strings.TrimSpace(raw))); s {
	case StatusAvailable, StatusCharging, StatusOccupied,
		StatusReserved, StatusOutOfOrder, StatusUnknown:
		return s
	default:
		return StatusOther
	}
}
