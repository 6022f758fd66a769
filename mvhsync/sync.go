package mvhsync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/scylladb/go-set/strset"
	"github.com/wagoodman/go-partybus"
	"github.com/wagoodman/go-progress"

	"github.com/mvh/mvh-sync/internal/bus"
	"github.com/mvh/mvh-sync/internal/log"
	"github.com/mvh/mvh-sync/mvhsync/app"
	"github.com/mvh/mvh-sync/mvhsync/event"
	"github.com/mvh/mvh-sync/mvhsync/event/monitor"
	"github.com/mvh/mvh-sync/mvhsync/store"
)

const (
	ListEndpoint   = "/apps"
	detailEndpoint = "/apps/%s"

	DefaultDelay = 100 * time.Millisecond
)

// Fetcher retrieves a complete JSON document from the remote API.
type Fetcher interface {
	Fetch(ctx context.Context, endpoint string) (json.RawMessage, error)
}

type Config struct {
	// Delay is the pause before every detail request
	Delay time.Duration
}

// Syncer pulls the app list and every app's details from the remote API into the output store, one request at a
// time. A failing app never stops the run; only setup, the list request and the index write are fatal.
type Syncer struct {
	fetcher Fetcher
	store   store.Store
	config  Config
	now     func() time.Time
}

func NewSyncer(fetcher Fetcher, s store.Store, cfg Config) *Syncer {
	return &Syncer{
		fetcher: fetcher,
		store:   s,
		config:  cfg,
		now:     time.Now,
	}
}

// Run performs one full sync. The returned error is only set for fatal failures; per-app failures are reported in
// the summary.
func (s *Syncer) Run(ctx context.Context) (*app.RunSummary, error) {
	summary := &app.RunSummary{
		RunID:   uuid.NewString(),
		Started: s.now(),
	}
	runLog := log.WithFields(map[string]interface{}{"run": summary.RunID})
	runLog.Infof("syncing into %s", s.store.Root())

	if err := s.store.Prepare(); err != nil {
		return nil, err
	}

	body, err := s.fetcher.Fetch(ctx, ListEndpoint)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch app list: %w", err)
	}

	listings, err := app.ParseList(body)
	if err != nil {
		return nil, err
	}

	if err := s.store.WriteIndex(app.NewIndex(listings, s.now())); err != nil {
		return nil, err
	}
	runLog.Infof("written %s (%d apps)", store.IndexFileName, len(listings))

	processed := progress.NewManual(int64(len(listings)))
	failed := progress.NewManual(-1)
	bus.Publish(partybus.Event{
		Type: event.SyncStarted,
		Value: monitor.Sync{
			Total:     len(listings),
			Processed: processed,
			Failed:    failed,
		},
	})

	seen := strset.New()
	for _, l := range listings {
		if l.HasID {
			if seen.Has(l.ID) {
				runLog.Warnf("app %s is listed more than once, the last entry wins", l.ID)
			}
			seen.Add(l.ID)
		}

		result, err := s.syncApp(ctx, l)
		if err != nil {
			// the run was interrupted, there is nothing left to isolate
			return nil, err
		}

		if result.Status == app.Failed {
			runLog.Errorf("failed to sync app %s: %+v", l.ID, result.Err)
			failed.Increment()
		} else {
			runLog.Debugf("synced app %s (%s)", l.ID, result.Change)
		}
		processed.Increment()

		summary.Results = append(summary.Results, result)
		bus.Publish(partybus.Event{
			Type:  event.AppSyncFinished,
			Value: result,
		})
	}
	processed.SetCompleted()
	failed.SetCompleted()

	summary.Finished = s.now()
	runLog.Infof("complete: %d synced, %d failed", len(summary.Synced()), len(summary.Failed()))

	return summary, nil
}

// syncApp fetches, normalizes and writes one app. Failures are captured in the result; an error is only returned
// when the context is done.
func (s *Syncer) syncApp(ctx context.Context, l app.Listing) (app.Result, error) {
	log.Infof("processing app %s (%s)", l.ID, l.Name)

	if err := pause(ctx, s.config.Delay); err != nil {
		return app.Result{}, err
	}

	if err := store.ValidateID(l.ID); err != nil {
		return app.NewFailedResult(l, err), nil
	}

	body, err := s.fetcher.Fetch(ctx, fmt.Sprintf(detailEndpoint, l.ID))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return app.Result{}, ctxErr
		}
		return app.NewFailedResult(l, err), nil
	}

	raw, err := app.DecodeDetail(body)
	if err != nil {
		return app.NewFailedResult(l, fmt.Errorf("unable to decode app details: %w", err)), nil
	}
	detail := app.Normalize(raw)

	change, previousVersion, err := s.store.WriteApp(l.ID, detail)
	if err != nil {
		return app.NewFailedResult(l, err), nil
	}

	return app.NewSyncedResult(l, detail, change, previousVersion), nil
}

func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
