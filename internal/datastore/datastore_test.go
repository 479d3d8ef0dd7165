package datastore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sl4desec/subpeek/internal/config"
	"github.com/sl4desec/subpeek/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFingerprints() []models.Fingerprint {
	return []models.Fingerprint{
		{
			Subdomain:     "api.example.com",
			IP:            "10.0.0.1",
			StatusCode:    models.IntPtr(200),
			Title:         models.StringPtr("API"),
			Server:        models.StringPtr("nginx"),
			ContentLength: models.Int64Ptr(1234),
		},
		{
			Subdomain: "mail.example.com",
			IP:        "10.0.0.2",
		},
	}
}

func TestNewParquetWriter_EmptyPath(t *testing.T) {
	_, err := NewParquetWriter("", "zstd", zerolog.Nop())
	require.Error(t, err)
}

func TestParquetWriter_WriteAndRead(t *testing.T) {
	for _, codec := range []string{"zstd", "gzip", "snappy", "none"} {
		t.Run(codec, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out", "results.parquet")
			writer, err := NewParquetWriter(path, codec, zerolog.Nop())
			require.NoError(t, err)

			scanTime := time.Now()
			result, err := writer.Write(context.Background(), "example.com", sampleFingerprints(), scanTime)
			require.NoError(t, err)
			assert.Equal(t, 2, result.RecordsWritten)
			assert.Positive(t, result.FileSize)

			records, err := ReadParquetFile(path)
			require.NoError(t, err)
			require.Len(t, records, 2)

			assert.Equal(t, "example.com", records[0].Domain)
			assert.Equal(t, scanTime.UnixMilli(), records[0].ScanTimestamp)
			assert.Equal(t, sampleFingerprints()[0], records[0].ToFingerprint())

			assert.Nil(t, records[1].StatusCode)
			assert.Nil(t, records[1].Title)
			assert.Nil(t, records[1].ContentLength)
		})
	}
}

func TestParquetWriter_CancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.parquet")
	writer, err := NewParquetWriter(path, "zstd", zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = writer.Write(ctx, "example.com", sampleFingerprints(), time.Now())
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}

func TestSQLiteStore_ReplaceResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	store, err := NewSQLiteStore(path, zerolog.Nop())
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	n, err := store.ReplaceResults(ctx, "example.com", sampleFingerprints(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	loaded, err := store.LoadResults(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleFingerprints(), loaded)

	// A second run replaces the previous rows.
	_, err = store.ReplaceResults(ctx, "example.com", sampleFingerprints()[1:], time.Now())
	require.NoError(t, err)

	loaded, err = store.LoadResults(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "mail.example.com", loaded[0].Subdomain)
}

func TestExporter(t *testing.T) {
	dir := t.TempDir()
	cfg := config.ExportConfig{
		ParquetPath:      filepath.Join(dir, "results.parquet"),
		SQLitePath:       filepath.Join(dir, "results.db"),
		CompressionCodec: "zstd",
	}

	exporter := NewExporter(cfg, zerolog.Nop())
	assert.True(t, exporter.Enabled())

	err := exporter.Export(context.Background(), "example.com", sampleFingerprints(), time.Now())
	require.NoError(t, err)
	assert.FileExists(t, cfg.ParquetPath)
	assert.FileExists(t, cfg.SQLitePath)
}

func TestExporter_Disabled(t *testing.T) {
	exporter := NewExporter(config.NewDefaultExportConfig(), zerolog.Nop())
	assert.False(t, exporter.Enabled())
	assert.NoError(t, exporter.Export(context.Background(), "example.com", nil, time.Now()))
}

func TestExporter_ParquetFailureDoesNotSkipSQLite(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	cfg := config.ExportConfig{
		ParquetPath: filepath.Join(blocker, "results.parquet"),
		SQLitePath:  filepath.Join(dir, "results.db"),
	}

	err := NewExporter(cfg, zerolog.Nop()).Export(context.Background(), "example.com", sampleFingerprints(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parquet export")
	assert.FileExists(t, cfg.SQLitePath)
}
