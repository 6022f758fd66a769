package json

import (
	"encoding/json"
	"io"

	"github.com/mvh/mvh-sync/mvhsync/app"
)

// Presenter is a generic struct for holding fields needed for reporting
type Presenter struct {
	summary app.RunSummary
}

// NewPresenter creates a new JSON presenter
func NewPresenter(summary app.RunSummary) *Presenter {
	return &Presenter{
		summary: summary,
	}
}

// Present creates a JSON-based reporting
func (pres *Presenter) Present(output io.Writer) error {
	doc := NewDocument(pres.summary)

	enc := json.NewEncoder(output)
	// prevent > and < from being escaped in the payload
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	return enc.Encode(&doc)
}
