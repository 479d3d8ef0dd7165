package datastore

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
	"github.com/sl4desec/subpeek/internal/common"
	"github.com/sl4desec/subpeek/internal/models"
)

// WriteResult contains the result of a write operation
type WriteResult struct {
	FilePath       string
	RecordsWritten int
	FileSize       int64
	WriteTime      time.Duration
}

// ParquetWriter writes final results to a single Parquet file.
type ParquetWriter struct {
	filePath         string
	compressionCodec string
	logger           zerolog.Logger
}

// NewParquetWriter creates a writer for filePath using the named codec
// (zstd, gzip, snappy or none).
func NewParquetWriter(filePath, compressionCodec string, logger zerolog.Logger) (*ParquetWriter, error) {
	if filePath == "" {
		return nil, common.NewValidationError("parquet_path", filePath, "parquet path cannot be empty")
	}

	return &ParquetWriter{
		filePath:         filePath,
		compressionCodec: compressionCodec,
		logger:           logger.With().Str("component", "ParquetWriter").Logger(),
	}, nil
}

// Write replaces the file with one row per fingerprint.
func (pw *ParquetWriter) Write(ctx context.Context, domain string, fingerprints []models.Fingerprint, scanTime time.Time) (*WriteResult, error) {
	startTime := time.Now()

	if err := ctx.Err(); err != nil {
		return nil, common.WrapError(err, "parquet write cancelled")
	}

	records := make([]ParquetSubdomainRecord, 0, len(fingerprints))
	for _, fp := range fingerprints {
		records = append(records, ToParquetRecord(domain, fp, scanTime))
	}

	if dir := filepath.Dir(pw.filePath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, common.WrapError(err, "failed to create parquet directory: "+dir)
		}
	}

	recordsWritten, err := pw.writeToParquetFile(records)
	if err != nil {
		return nil, err
	}

	fileSize := int64(0)
	if fileInfo, statErr := os.Stat(pw.filePath); statErr == nil {
		fileSize = fileInfo.Size()
	}

	result := &WriteResult{
		FilePath:       pw.filePath,
		RecordsWritten: recordsWritten,
		FileSize:       fileSize,
		WriteTime:      time.Since(startTime),
	}

	pw.logger.Info().
		Str("file_path", result.FilePath).
		Int("records_written", result.RecordsWritten).
		Dur("write_time", result.WriteTime).
		Msg("Wrote results to Parquet file")

	return result, nil
}

func (pw *ParquetWriter) writeToParquetFile(records []ParquetSubdomainRecord) (int, error) {
	file, err := os.Create(pw.filePath)
	if err != nil {
		return 0, common.WrapError(err, "failed to create/truncate parquet file: "+pw.filePath)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[ParquetSubdomainRecord](file, pw.compressionOption())

	recordsWritten, err := writer.Write(records)
	if err != nil {
		_ = writer.Close()
		return 0, common.WrapError(err, "failed to write records to parquet file")
	}

	if err := writer.Close(); err != nil {
		return 0, common.WrapError(err, "failed to finalize parquet file")
	}

	return recordsWritten, nil
}

func (pw *ParquetWriter) compressionOption() parquet.WriterOption {
	switch pw.compressionCodec {
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "none":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		return parquet.Compression(&parquet.Zstd)
	}
}

// ReadParquetFile loads every row of a file written by ParquetWriter.
func ReadParquetFile(filePath string) ([]ParquetSubdomainRecord, error) {
	records, err := parquet.ReadFile[ParquetSubdomainRecord](filePath)
	if err != nil {
		return nil, common.WrapError(err, "failed to read parquet file: "+filePath)
	}
	return records, nil
}
