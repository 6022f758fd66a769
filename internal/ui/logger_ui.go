package ui

import (
	"fmt"
	"io"

	"github.com/wagoodman/go-partybus"

	"github.com/mvh/mvh-sync/internal/log"
	"github.com/mvh/mvh-sync/mvhsync/app"
	"github.com/mvh/mvh-sync/mvhsync/event"
	"github.com/mvh/mvh-sync/mvhsync/event/monitor"
)

type loggerUI struct {
	unsubscribe  func() error
	reportOutput io.Writer
	monitor      *monitor.Sync
}

// NewLoggerUI writes all events to the common application logger and writes the final report to the given writer.
func NewLoggerUI(reportWriter io.Writer) UI {
	return &loggerUI{
		reportOutput: reportWriter,
	}
}

func (l *loggerUI) Setup(unsubscribe func() error) error {
	l.unsubscribe = unsubscribe
	return nil
}

func (l *loggerUI) Handle(e partybus.Event) error {
	switch e.Type {
	case event.SyncStarted:
		mon, err := handleSyncStarted(e)
		if err != nil {
			log.Warnf("unable to track sync progress: %+v", err)
			return nil
		}
		l.monitor = mon
		log.Infof("syncing %d apps", mon.Total)
		return nil

	case event.AppSyncFinished:
		result, err := handleAppSyncFinished(e)
		if err != nil {
			log.Warnf("unable to show app sync result: %+v", err)
			return nil
		}
		l.logProgress(*result)
		return nil

	case event.SyncFinished:
		if err := handleSyncFinished(e, l.reportOutput); err != nil {
			log.Warnf("unable to show sync finished event: %+v", err)
		}

	// ignore all other events
	default:
		return nil
	}

	// this is the last expected event, stop listening to events
	return l.unsubscribe()
}

func (l *loggerUI) logProgress(result app.Result) {
	position := "[?]"
	if l.monitor != nil {
		position = fmt.Sprintf("[%d/%d]", l.monitor.Processed.Current(), l.monitor.Total)
	}

	if result.Status == app.Failed {
		log.Warnf("%s app %s failed", position, result.ID)
		return
	}
	log.Infof("%s app %s %s", position, result.ID, result.Change)
}

func (l *loggerUI) Teardown(_ bool) error {
	if l.monitor != nil && l.monitor.Failed.Current() > 0 {
		log.Warnf("%d of %d apps failed to sync", l.monitor.Failed.Current(), l.monitor.Total)
	}
	return nil
}
