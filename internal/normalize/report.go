package normalize

import (
	"fmt"
	"strings"
)

// Report renders the missing-value / UNKNOWN-exclusion summary for one batch
// run. The exclusion decision is stated explicitly so the data loss stays
// observable in the output artifacts.
func Report(runID string, t Tally) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run: %s\n", runID)
	fmt.Fprintf(&b, "Total records: %d\n", t.Total)
	fmt.Fprintf(&b, "UNKNOWN count: %d\n", t.Unknown)
	fmt.Fprintf(&b, "UNKNOWN percentage: %.2f%%\n", t.UnknownPercent())
	fmt.Fprintf(&b, "Skipped (decode failure): %d\n", t.DecodeFailure)
	fmt.Fprintf(&b, "Skipped (missing field): %d\n", t.MissingField)
	fmt.Fprintf(&b, "Skipped (timestamp parse failure): %d\n", t.BadTimestamp)
	b.WriteString("Decision: Excluded 'UNKNOWN' status from occupancy metrics.\n")
	return b.String()
}
