package app

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
)

// RunSummary collects the per-app results of one sync run, in list order.
type RunSummary struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	Results  []Result
}

func (s RunSummary) Total() int {
	return len(s.Results)
}

func (s RunSummary) Synced() []Result {
	return s.filter(Synced)
}

func (s RunSummary) Failed() []Result {
	return s.filter(Failed)
}

// Err aggregates every per-app failure. A run with failures still completed; callers decide whether this matters.
func (s RunSummary) Err() error {
	var errs error
	for _, r := range s.Failed() {
		errs = multierror.Append(errs, fmt.Errorf("app %s: %w", r.ID, r.Err))
	}
	return errs
}

func (s RunSummary) filter(status Status) []Result {
	var results []Result
	for _, r := range s.Results {
		if r.Status == status {
			results = append(results, r)
		}
	}
	return results
}
