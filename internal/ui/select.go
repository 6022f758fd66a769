package ui

import (
	"io"
)

// Select returns the UIs to attempt in order; the first one that sets up successfully is used. The final report
// is written to the given writer.
func Select(reportWriter io.Writer) (uis []UI) {
	return append(uis, NewLoggerUI(reportWriter))
}
