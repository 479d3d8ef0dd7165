package models

// ResolvedHost is a candidate that answered an A query.
type ResolvedHost struct {
	Hostname string `json:"hostname"`
	IP       string `json:"ip"`
}
