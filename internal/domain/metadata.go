package domain

// DatasetMeta describes the last offline refresh of the company list.
// Produced by the external data-refresh job; informational only, the
// game logic never consumes it.
type DatasetMeta struct {
	AsOfDate         string `json:"asOfDate"`     // "YYYY-MM-DD"
	UpdatedAtUTC     string `json:"updatedAtUTC"` // ISO-8601 timestamp
	UpdatedCompanies int    `json:"updatedCompanies"`
	MissingCompanies int    `json:"missingCompanies"`
}
