package table

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/mvh/mvh-sync/mvhsync/app"
)

// Presenter is a generic struct for holding fields needed for reporting
type Presenter struct {
	summary app.RunSummary
}

// NewPresenter is a *Presenter constructor
func NewPresenter(summary app.RunSummary) *Presenter {
	return &Presenter{
		summary: summary,
	}
}

// Present creates a table-based report of the sync run
func (p *Presenter) Present(output io.Writer) error {
	if p.summary.Total() == 0 {
		if _, err := io.WriteString(output, "No apps listed\n"); err != nil {
			return err
		}
		return p.footer(output)
	}

	table := tablewriter.NewWriter(output)
	table.SetHeader([]string{"App", "Name", "Status", "Version", "Size", "Result"})
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetAutoFormatHeaders(true)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	table.AppendBulk(getRows(p.summary))
	table.Render()

	return p.footer(output)
}

func (p *Presenter) footer(output io.Writer) error {
	_, err := fmt.Fprintf(output, "synced %d of %d apps (%d failed), run %s\n",
		len(p.summary.Synced()), p.summary.Total(), len(p.summary.Failed()), p.summary.RunID)
	return err
}

func getRows(summary app.RunSummary) [][]string {
	rows := make([][]string, 0, len(summary.Results))
	for _, r := range summary.Results {
		rows = append(rows, newRow(r))
	}
	return rows
}

func newRow(r app.Result) []string {
	if r.Status == app.Failed || r.Detail == nil {
		var reason string
		if r.Err != nil {
			reason = r.Err.Error()
		}
		return []string{r.ID, r.Name, string(r.Status), "", "", reason}
	}

	var size string
	if r.Detail.Download.SizeBytes > 0 {
		size = humanize.Bytes(uint64(r.Detail.Download.SizeBytes))
	}

	return []string{
		r.ID,
		r.Name,
		string(r.Status),
		app.VersionTransition(r.PreviousVersion, r.Detail.Version),
		size,
		string(r.Change),
	}
}
