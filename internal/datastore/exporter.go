package datastore

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sl4desec/subpeek/internal/common"
	"github.com/sl4desec/subpeek/internal/config"
	"github.com/sl4desec/subpeek/internal/models"
)

// Exporter writes final results to every configured sink.
type Exporter struct {
	config config.ExportConfig
	logger zerolog.Logger
}

// NewExporter creates an exporter from the export configuration
func NewExporter(cfg config.ExportConfig, logger zerolog.Logger) *Exporter {
	return &Exporter{
		config: cfg,
		logger: logger.With().Str("component", "Exporter").Logger(),
	}
}

// Enabled reports whether any sink is configured
func (e *Exporter) Enabled() bool {
	return e.config.ParquetPath != "" || e.config.SQLitePath != ""
}

// Export writes fingerprints to Parquet and/or SQLite. Each failure is logged
// and collected; one sink failing does not skip the other.
func (e *Exporter) Export(ctx context.Context, domain string, fingerprints []models.Fingerprint, scanTime time.Time) error {
	var ec common.ErrorCollector

	if e.config.ParquetPath != "" {
		ec.AddWithContext(e.exportParquet(ctx, domain, fingerprints, scanTime), "parquet export")
	}
	if e.config.SQLitePath != "" {
		ec.AddWithContext(e.exportSQLite(ctx, domain, fingerprints, scanTime), "sqlite export")
	}

	err := ec.Error()
	if err != nil {
		e.logger.Error().Err(err).Msg("Export failed")
	}
	return err
}

func (e *Exporter) exportParquet(ctx context.Context, domain string, fingerprints []models.Fingerprint, scanTime time.Time) error {
	writer, err := NewParquetWriter(e.config.ParquetPath, e.config.CompressionCodec, e.logger)
	if err != nil {
		return err
	}
	_, err = writer.Write(ctx, domain, fingerprints, scanTime)
	return err
}

func (e *Exporter) exportSQLite(ctx context.Context, domain string, fingerprints []models.Fingerprint, scanTime time.Time) error {
	store, err := NewSQLiteStore(e.config.SQLitePath, e.logger)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.ReplaceResults(ctx, domain, fingerprints, scanTime)
	return err
}
