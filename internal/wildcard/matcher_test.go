package wildcard

import (
	"testing"

	"github.com/sl4desec/subpeek/internal/models"
	"github.com/stretchr/testify/assert"
)

func fingerprint(ip string, opts ...func(*models.Fingerprint)) models.Fingerprint {
	fp := models.Fingerprint{Subdomain: "x.example.com", IP: ip}
	for _, o := range opts {
		o(&fp)
	}
	return fp
}

func withTitle(s string) func(*models.Fingerprint) {
	return func(fp *models.Fingerprint) { fp.Title = models.StringPtr(s) }
}

func withLength(n int64) func(*models.Fingerprint) {
	return func(fp *models.Fingerprint) { fp.ContentLength = models.Int64Ptr(n) }
}

func withStatus(code int) func(*models.Fingerprint) {
	return func(fp *models.Fingerprint) { fp.StatusCode = models.IntPtr(code) }
}

func baselineOf(fp models.Fingerprint) *models.BaselineProfile {
	return models.NewBaselineProfile(fp)
}

func TestIsFalsePositive(t *testing.T) {
	tests := []struct {
		name     string
		fp       models.Fingerprint
		baseline *models.BaselineProfile
		want     bool
	}{
		{
			name:     "same IP same title",
			fp:       fingerprint("1.2.3.4", withTitle("Default Page")),
			baseline: baselineOf(fingerprint("1.2.3.4", withTitle("Default Page"))),
			want:     true,
		},
		{
			name:     "different IP close length",
			fp:       fingerprint("1.2.3.4", withLength(1000)),
			baseline: baselineOf(fingerprint("9.9.9.9", withLength(1005))),
			want:     false,
		},
		{
			name:     "same IP length within tolerance",
			fp:       fingerprint("5.5.5.5", withLength(1000)),
			baseline: baselineOf(fingerprint("5.5.5.5", withLength(1030))),
			want:     true,
		},
		{
			name:     "same IP length beyond tolerance",
			fp:       fingerprint("5.5.5.5", withLength(1000)),
			baseline: baselineOf(fingerprint("5.5.5.5", withLength(1060))),
			want:     false,
		},
		{
			name:     "length difference equal to tolerance",
			fp:       fingerprint("5.5.5.5", withLength(1000), withTitle("a")),
			baseline: baselineOf(fingerprint("5.5.5.5", withLength(1050), withTitle("b"))),
			want:     false,
		},
		{
			name:     "different IP same title",
			fp:       fingerprint("1.1.1.1", withTitle("Default Page")),
			baseline: baselineOf(fingerprint("2.2.2.2", withTitle("Default Page"))),
			want:     false,
		},
		{
			name:     "same status both titles absent",
			fp:       fingerprint("5.5.5.5", withStatus(404)),
			baseline: baselineOf(fingerprint("5.5.5.5", withStatus(404))),
			want:     true,
		},
		{
			name:     "both unresponsive on same IP",
			fp:       fingerprint("5.5.5.5"),
			baseline: baselineOf(fingerprint("5.5.5.5")),
			want:     true,
		},
		{
			name:     "status absent vs present",
			fp:       fingerprint("5.5.5.5"),
			baseline: baselineOf(fingerprint("5.5.5.5", withStatus(200))),
			want:     false,
		},
		{
			name:     "same status but one title present-empty",
			fp:       fingerprint("5.5.5.5", withStatus(200), withTitle("")),
			baseline: baselineOf(fingerprint("5.5.5.5", withStatus(200))),
			want:     false,
		},
		{
			name:     "empty titles on both sides are equal",
			fp:       fingerprint("5.5.5.5", withTitle("")),
			baseline: baselineOf(fingerprint("5.5.5.5", withTitle(""))),
			want:     true,
		},
		{
			name:     "different titles, distant lengths, different status",
			fp:       fingerprint("5.5.5.5", withStatus(200), withTitle("Shop"), withLength(9000)),
			baseline: baselineOf(fingerprint("5.5.5.5", withStatus(404), withTitle("Not Found"), withLength(300))),
			want:     false,
		},
		{
			name:     "nil baseline",
			fp:       fingerprint("5.5.5.5"),
			baseline: nil,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsFalsePositive(tt.fp, tt.baseline))
		})
	}
}

func TestIsFalsePositive_DifferentIPNeverMatches(t *testing.T) {
	baseline := baselineOf(fingerprint("9.9.9.9", withStatus(200), withTitle("T"), withLength(10)))
	variants := []models.Fingerprint{
		fingerprint("1.1.1.1", withStatus(200), withTitle("T"), withLength(10)),
		fingerprint("1.1.1.1"),
		fingerprint("1.1.1.1", withLength(10)),
	}
	for _, fp := range variants {
		assert.False(t, IsFalsePositive(fp, baseline))
	}
}

func TestMatcher_CustomTolerance(t *testing.T) {
	fp := fingerprint("5.5.5.5", withLength(1000))
	baseline := baselineOf(fingerprint("5.5.5.5", withLength(1060)))

	assert.True(t, Matcher{Tolerance: 100}.IsFalsePositive(fp, baseline))
	assert.False(t, Matcher{Tolerance: 0}.IsFalsePositive(fp, baseline))
}

func TestMatcher_Filter(t *testing.T) {
	fps := []models.Fingerprint{
		{Subdomain: "real.example.com", IP: "1.1.1.1", Title: models.StringPtr("Real")},
		{Subdomain: "junk.example.com", IP: "9.9.9.9", Title: models.StringPtr("Parked")},
		{Subdomain: "other.example.com", IP: "9.9.9.9", Title: models.StringPtr("Own site"), ContentLength: models.Int64Ptr(50000)},
	}
	baseline := baselineOf(fingerprint("9.9.9.9", withTitle("Parked"), withLength(120)))
	m := Matcher{Tolerance: DefaultLengthTolerance}

	kept, removed := m.Filter(fps, baseline)
	assert.Equal(t, 1, removed)
	assert.Len(t, kept, 2)
	assert.Equal(t, "real.example.com", kept[0].Subdomain)
	assert.Equal(t, "other.example.com", kept[1].Subdomain)

	all, removed := m.Filter(fps, nil)
	assert.Equal(t, 0, removed)
	assert.Equal(t, fps, all)
}
