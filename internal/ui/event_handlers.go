package ui

import (
	"fmt"
	"io"

	"github.com/wagoodman/go-partybus"

	"github.com/mvh/mvh-sync/mvhsync/app"
	"github.com/mvh/mvh-sync/mvhsync/event/monitor"
	"github.com/mvh/mvh-sync/mvhsync/event/parsers"
)

func handleSyncStarted(event partybus.Event) (*monitor.Sync, error) {
	mon, err := parsers.ParseSyncStarted(event)
	if err != nil {
		return nil, fmt.Errorf("bad %s event: %w", event.Type, err)
	}
	return mon, nil
}

func handleAppSyncFinished(event partybus.Event) (*app.Result, error) {
	result, err := parsers.ParseAppSyncFinished(event)
	if err != nil {
		return nil, fmt.Errorf("bad %s event: %w", event.Type, err)
	}
	return result, nil
}

func handleSyncFinished(event partybus.Event, reportOutput io.Writer) error {
	// show the report to stdout
	pres, err := parsers.ParseSyncFinished(event)
	if err != nil {
		return fmt.Errorf("bad %s event: %w", event.Type, err)
	}

	if err := pres.Present(reportOutput); err != nil {
		return fmt.Errorf("unable to show sync report: %w", err)
	}
	return nil
}
