package main

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"charging_occupancy/internal/config"
	"charging_occupancy/internal/logger"
	"charging_occupancy/internal/pipeline"
	"charging_occupancy/internal/source"
)

func main() {
	// load configs/config.yml
	cfg, err := config.Load()
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel)

	// a signal cancels the batch between dump files
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, closer, err := openSource(cfg)
	if err != nil {
		log.Fatalw("failed to open event source", "kind", cfg.Source.Kind, "err", err)
	}
	if closer != nil {
		defer func() {
			if cerr := closer.Close(); cerr != nil {
				log.Warnw("failed to close event source", "err", cerr)
			}
		}()
	}

	summary, err := pipeline.New(cfg, log, src).Run(ctx)
	if err != nil {
		log.Fatalw("batch run failed", "err", err)
	}
	log.Infow("run summary",
		"run_id", summary.RunID,
		"canonical_records", summary.Tally.Total,
		"unknown_pct", summary.Tally.UnknownPercent(),
		"station_rows", summary.StationRows,
		"connector_rows", summary.ConnectorRows,
	)
}

// openSource builds the configured raw-event source. The returned closer is
// nil for sources without an underlying handle.
func openSource(cfg *config.Config) (source.Source, io.Closer, error) {
	switch cfg.Source.Kind {
	case config.SourceSQLite:
		db, err := source.OpenSnapshot(cfg.Source.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return source.NewSQLiteSource(db, cfg.Source.SampleFiles), db, nil
	default:
		return source.NewJSONLSource(cfg.Source.Dir, cfg.Source.SampleFiles), nil, nil
	}
}
