package parsers

import (
	"fmt"

	"github.com/wagoodman/go-partybus"

	"github.com/mvh/mvh-sync/mvhsync/app"
	"github.com/mvh/mvh-sync/mvhsync/event"
	"github.com/mvh/mvh-sync/mvhsync/event/monitor"
	"github.com/mvh/mvh-sync/mvhsync/presenter"
)

type ErrBadPayload struct {
	Type  partybus.EventType
	Field string
	Value interface{}
}

func (e *ErrBadPayload) Error() string {
	return fmt.Sprintf("event='%s' has bad event payload field='%v': '%+v'", string(e.Type), e.Field, e.Value)
}

func newPayloadErr(t partybus.EventType, field string, value interface{}) error {
	return &ErrBadPayload{
		Type:  t,
		Field: field,
		Value: value,
	}
}

func checkEventType(actual, expected partybus.EventType) error {
	if actual != expected {
		return newPayloadErr(expected, "Type", actual)
	}
	return nil
}

func ParseSyncStarted(e partybus.Event) (*monitor.Sync, error) {
	if err := checkEventType(e.Type, event.SyncStarted); err != nil {
		return nil, err
	}

	mon, ok := e.Value.(monitor.Sync)
	if !ok {
		return nil, newPayloadErr(e.Type, "Value", e.Value)
	}

	return &mon, nil
}

func ParseAppSyncFinished(e partybus.Event) (*app.Result, error) {
	if err := checkEventType(e.Type, event.AppSyncFinished); err != nil {
		return nil, err
	}

	result, ok := e.Value.(app.Result)
	if !ok {
		return nil, newPayloadErr(e.Type, "Value", e.Value)
	}

	return &result, nil
}

func ParseSyncFinished(e partybus.Event) (presenter.Presenter, error) {
	if err := checkEventType(e.Type, event.SyncFinished); err != nil {
		return nil, err
	}

	pres, ok := e.Value.(presenter.Presenter)
	if !ok {
		return nil, newPayloadErr(e.Type, "Value", e.Value)
	}

	return pres, nil
}
