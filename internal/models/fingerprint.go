package models

// Fingerprint is the observable HTTP identity of a resolved subdomain.
// Optional attributes are nil when no response was obtained or the
// response did not carry them; they serialize as null.
type Fingerprint struct {
	Subdomain     string  `json:"subdomain"`
	IP            string  `json:"ip"`
	StatusCode    *int    `json:"status_code"`
	Title         *string `json:"title"`
	Server        *string `json:"server"`
	ContentLength *int64  `json:"content_length"`
}

// Responded reports whether any scheme produced a completed HTTP response.
func (f *Fingerprint) Responded() bool {
	return f != nil && f.StatusCode != nil
}

// BaselineProfile is the fingerprint of a name that should not exist.
// A nil profile means the domain has no wildcard DNS.
type BaselineProfile struct {
	IP            *string `json:"ip"`
	StatusCode    *int    `json:"status_code"`
	Title         *string `json:"title"`
	ContentLength *int64  `json:"content_length"`
}

// NewBaselineProfile keeps the attributes of fp used for wildcard matching.
func NewBaselineProfile(fp Fingerprint) *BaselineProfile {
	return &BaselineProfile{
		IP:            StringPtr(fp.IP),
		StatusCode:    fp.StatusCode,
		Title:         fp.Title,
		ContentLength: fp.ContentLength,
	}
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// IntPtr returns a pointer to i
func IntPtr(i int) *int {
	return &i
}

// Int64Ptr returns a pointer to i
func Int64Ptr(i int64) *int64 {
	return &i
}
