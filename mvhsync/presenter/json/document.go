package json

import (
	"time"

	"github.com/mvh/mvh-sync/mvhsync/app"
)

// Document is the machine-readable report of a sync run.
type Document struct {
	RunID    string     `json:"runId"`
	Started  time.Time  `json:"started"`
	Finished time.Time  `json:"finished"`
	Total    int        `json:"total"`
	Synced   int        `json:"synced"`
	Failed   int        `json:"failed"`
	Results  []AppEntry `json:"results"`
}

type AppEntry struct {
	ID              string `json:"id"`
	Name            string `json:"name,omitempty"`
	Status          string `json:"status"`
	Change          string `json:"change,omitempty"`
	Version         string `json:"version,omitempty"`
	PreviousVersion string `json:"previousVersion,omitempty"`
	SizeBytes       int64  `json:"sizeBytes,omitempty"`
	SHA256          string `json:"sha256,omitempty"`
	Error           string `json:"error,omitempty"`
}

func NewDocument(summary app.RunSummary) Document {
	// results should always be an array, even when empty
	entries := make([]AppEntry, 0, len(summary.Results))
	for _, r := range summary.Results {
		entries = append(entries, newAppEntry(r))
	}

	return Document{
		RunID:    summary.RunID,
		Started:  summary.Started,
		Finished: summary.Finished,
		Total:    summary.Total(),
		Synced:   len(summary.Synced()),
		Failed:   len(summary.Failed()),
		Results:  entries,
	}
}

func newAppEntry(r app.Result) AppEntry {
	entry := AppEntry{
		ID:              r.ID,
		Name:            r.Name,
		Status:          string(r.Status),
		Change:          string(r.Change),
		PreviousVersion: r.PreviousVersion,
	}
	if r.Err != nil {
		entry.Error = r.Err.Error()
	}
	if r.Detail != nil {
		entry.Version = r.Detail.Version
		entry.SizeBytes = r.Detail.Download.SizeBytes
		entry.SHA256 = r.Detail.Download.SHA256
	}
	return entry
}
