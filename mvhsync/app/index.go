package app

import (
	"encoding/json"
	"time"
)

const (
	IndexSchema        = "index"
	IndexSchemaVersion = "1.0.0"

	// same shape as JavaScript's Date.toISOString
	timestampFormat = "2006-01-02T15:04:05.000Z"
)

// Summary is the entry of one app inside the index document.
type Summary struct {
	ID      json.RawMessage `json:"id,omitempty"`
	Name    json.RawMessage `json:"name,omitempty"`
	Updated json.RawMessage `json:"updated,omitempty"`
}

// Index is the document describing every app known to the remote API at generation time.
type Index struct {
	Schema      string    `json:"$schema"`
	Version     string    `json:"version"`
	GeneratedAt string    `json:"generated_at"`
	TotalApps   int       `json:"total_apps"`
	Apps        []Summary `json:"apps"`
}

// NewIndex builds the index for the given listings, in list order.
func NewIndex(listings []Listing, generatedAt time.Time) Index {
	apps := make([]Summary, 0, len(listings))
	for _, l := range listings {
		apps = append(apps, l.Summary())
	}

	return Index{
		Schema:      IndexSchema,
		Version:     IndexSchemaVersion,
		GeneratedAt: FormatTimestamp(generatedAt),
		TotalApps:   len(apps),
		Apps:        apps,
	}
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampFormat)
}
