package config

// ExportConfig controls optional on-disk copies of the results.
// Empty paths disable the corresponding exporter.
type ExportConfig struct {
	ParquetPath      string `json:"parquet_path,omitempty" yaml:"parquet_path,omitempty"`
	SQLitePath       string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`
	CompressionCodec string `json:"compression_codec,omitempty" yaml:"compression_codec,omitempty" validate:"omitempty,oneof=zstd gzip snappy none"`
}

// NewDefaultExportConfig creates default export configuration
func NewDefaultExportConfig() ExportConfig {
	return ExportConfig{
		CompressionCodec: DefaultExportCompressionCodec,
	}
}
