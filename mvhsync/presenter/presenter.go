package presenter

import (
	"io"

	"github.com/mvh/mvh-sync/mvhsync/app"
	"github.com/mvh/mvh-sync/mvhsync/presenter/json"
	"github.com/mvh/mvh-sync/mvhsync/presenter/table"
)

// Presenter is the main interface other Presenters need to implement
type Presenter interface {
	Present(io.Writer) error
}

// GetPresenter retrieves a Presenter that matches a CLI option
func GetPresenter(option Option, summary app.RunSummary) Presenter {
	switch option {
	case JSONPresenter:
		return json.NewPresenter(summary)
	case TablePresenter:
		return table.NewPresenter(summary)
	default:
		return nil
	}
}
