package app

import (
	"fmt"
)

type Status string

const (
	Synced Status = "synced"
	Failed Status = "failed"
)

// Change describes what writing a detail document did to the file on disk.
type Change string

const (
	NoChange  Change = ""
	Created   Change = "created"
	Updated   Change = "updated"
	Unchanged Change = "unchanged"
)

// Result is the outcome of syncing a single app.
type Result struct {
	ID              string
	Name            string
	Status          Status
	Change          Change
	PreviousVersion string
	Detail          *Detail
	Err             error
}

func NewSyncedResult(l Listing, d Detail, change Change, previousVersion string) Result {
	return Result{
		ID:              l.ID,
		Name:            l.Name,
		Status:          Synced,
		Change:          change,
		PreviousVersion: previousVersion,
		Detail:          &d,
	}
}

func NewFailedResult(l Listing, err error) Result {
	return Result{
		ID:     l.ID,
		Name:   l.Name,
		Status: Failed,
		Err:    err,
	}
}

func (r Result) String() string {
	if r.Status == Failed {
		return fmt.Sprintf("Result(app=%s status=%s err=%v)", r.ID, r.Status, r.Err)
	}
	return fmt.Sprintf("Result(app=%s status=%s change=%s)", r.ID, r.Status, r.Change)
}
