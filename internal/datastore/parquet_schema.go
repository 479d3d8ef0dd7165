package datastore

import (
	"time"

	"github.com/sl4desec/subpeek/internal/models"
)

// ParquetSubdomainRecord is the Parquet row for one surviving fingerprint.
// Absent attributes stay nil so they are stored as nulls.
type ParquetSubdomainRecord struct {
	Domain        string  `parquet:"domain"`
	Subdomain     string  `parquet:"subdomain"`
	IP            string  `parquet:"ip"`
	StatusCode    *int32  `parquet:"status_code,optional"`
	Title         *string `parquet:"title,optional"`
	Server        *string `parquet:"server,optional"`
	ContentLength *int64  `parquet:"content_length,optional"`
	ScanTimestamp int64   `parquet:"scan_timestamp"`
}

// ToParquetRecord converts a fingerprint into its Parquet row
func ToParquetRecord(domain string, fp models.Fingerprint, scanTime time.Time) ParquetSubdomainRecord {
	record := ParquetSubdomainRecord{
		Domain:        domain,
		Subdomain:     fp.Subdomain,
		IP:            fp.IP,
		Title:         fp.Title,
		Server:        fp.Server,
		ContentLength: fp.ContentLength,
		ScanTimestamp: scanTime.UnixMilli(),
	}
	if fp.StatusCode != nil {
		code := int32(*fp.StatusCode)
		record.StatusCode = &code
	}
	return record
}

// ToFingerprint converts a Parquet row back to a fingerprint.
func (r *ParquetSubdomainRecord) ToFingerprint() models.Fingerprint {
	fp := models.Fingerprint{
		Subdomain:     r.Subdomain,
		IP:            r.IP,
		Title:         r.Title,
		Server:        r.Server,
		ContentLength: r.ContentLength,
	}
	if r.StatusCode != nil {
		fp.StatusCode = models.IntPtr(int(*r.StatusCode))
	}
	return fp
}
