package ui

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/go-progress"

	"github.com/mvh/mvh-sync/mvhsync/app"
	"github.com/mvh/mvh-sync/mvhsync/event"
	"github.com/mvh/mvh-sync/mvhsync/event/monitor"
)

type stubPresenter struct {
	report string
	err    error
}

func (p stubPresenter) Present(w io.Writer) error {
	if p.err != nil {
		return p.err
	}
	_, err := io.WriteString(w, p.report)
	return err
}

func TestLoggerUI_Handle(t *testing.T) {
	var report bytes.Buffer
	ux := NewLoggerUI(&report)

	var unsubscribed int
	require.NoError(t, ux.Setup(func() error {
		unsubscribed++
		return nil
	}))

	processed := progress.NewManual(2)
	failed := progress.NewManual(-1)

	events := []partybus.Event{
		{Type: event.SyncStarted, Value: monitor.Sync{Total: 2, Processed: processed, Failed: failed}},
		{Type: event.AppSyncFinished, Value: app.Result{ID: "a", Status: app.Synced, Change: app.Created}},
		{Type: event.AppSyncFinished, Value: app.Result{ID: "b", Status: app.Failed, Err: fmt.Errorf("boom")}},
		{Type: partybus.EventType("something-else")},
	}
	for _, e := range events {
		assert.NoError(t, ux.Handle(e))
	}
	assert.Equal(t, 0, unsubscribed)
	assert.Empty(t, report.String())

	assert.NoError(t, ux.Handle(partybus.Event{
		Type:  event.SyncFinished,
		Value: stubPresenter{report: "the report\n"},
	}))
	assert.Equal(t, 1, unsubscribed)
	assert.Equal(t, "the report\n", report.String())

	assert.NoError(t, ux.Teardown(false))
}

func TestLoggerUI_Handle_badPayloads(t *testing.T) {
	var report bytes.Buffer
	ux := NewLoggerUI(&report)

	var unsubscribed int
	require.NoError(t, ux.Setup(func() error {
		unsubscribed++
		return nil
	}))

	// bad payloads are logged, never fatal
	assert.NoError(t, ux.Handle(partybus.Event{Type: event.SyncStarted, Value: "nope"}))
	assert.NoError(t, ux.Handle(partybus.Event{Type: event.AppSyncFinished, Value: 42}))
	assert.NoError(t, ux.Handle(partybus.Event{Type: event.AppSyncFinished, Value: app.Result{ID: "a"}}))

	// the final event still ends the subscription even when the report cannot be shown
	assert.NoError(t, ux.Handle(partybus.Event{Type: event.SyncFinished, Value: stubPresenter{err: fmt.Errorf("broken")}}))
	assert.Equal(t, 1, unsubscribed)
	assert.Empty(t, report.String())

	assert.NoError(t, ux.Teardown(true))
}

func TestSelect(t *testing.T) {
	uis := Select(io.Discard)
	require.Len(t, uis, 1)
	assert.IsType(t, &loggerUI{}, uis[0])
}
