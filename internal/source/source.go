// Package source loads raw decoded status events from an external dump.
// Two implementations exist: a JSONL dump-directory walker and a sqlite
// snapshot reader. Both hand unvalidated events to the normalizer.
package source

import (
	"context"

	"charging_occupancy/internal/models"
)

// Source yields one batch of raw events. The second return value counts
// entries that could not be decoded at all; those never abort the load.
type Source interface {
	Load(ctx context.Context) ([]models.RawEvent, int, error)
}
