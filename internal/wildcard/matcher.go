package wildcard

import (
	"github.com/sl4desec/subpeek/internal/models"
)

// DefaultLengthTolerance is the content length difference, in bytes, below
// which two responses from the same IP are considered the same page.
const DefaultLengthTolerance int64 = 50

// Matcher decides whether a fingerprint is an artifact of wildcard DNS.
type Matcher struct {
	Tolerance int64
}

// IsFalsePositive applies the default tolerance.
func IsFalsePositive(fp models.Fingerprint, baseline *models.BaselineProfile) bool {
	return Matcher{Tolerance: DefaultLengthTolerance}.IsFalsePositive(fp, baseline)
}

// IsFalsePositive reports whether fp looks like the baseline page. Rules, in order:
// different IP never matches; equal present titles match; present lengths
// closer than Tolerance match; equal status with both titles absent matches.
func (m Matcher) IsFalsePositive(fp models.Fingerprint, baseline *models.BaselineProfile) bool {
	if baseline == nil || baseline.IP == nil || fp.IP != *baseline.IP {
		return false
	}

	if fp.Title != nil && baseline.Title != nil && *fp.Title == *baseline.Title {
		return true
	}

	if fp.ContentLength != nil && baseline.ContentLength != nil {
		diff := *fp.ContentLength - *baseline.ContentLength
		if diff < 0 {
			diff = -diff
		}
		if diff < m.Tolerance {
			return true
		}
	}

	if equalStatus(fp.StatusCode, baseline.StatusCode) && fp.Title == nil && baseline.Title == nil {
		return true
	}

	return false
}

// Filter drops fingerprints matching baseline and reports how many were removed.
// A nil baseline keeps everything.
func (m Matcher) Filter(fps []models.Fingerprint, baseline *models.BaselineProfile) ([]models.Fingerprint, int) {
	if baseline == nil {
		return fps, 0
	}

	kept := make([]models.Fingerprint, 0, len(fps))
	for _, fp := range fps {
		if m.IsFalsePositive(fp, baseline) {
			continue
		}
		kept = append(kept, fp)
	}
	return kept, len(fps) - len(kept)
}

// equalStatus treats two absent codes as equal.
func equalStatus(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
