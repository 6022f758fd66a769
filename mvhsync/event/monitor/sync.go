package monitor

import "github.com/wagoodman/go-progress"

// Sync tracks a single run: Processed counts every app attempted (synced or failed), Failed only the failures.
type Sync struct {
	Total     int
	Processed progress.Monitorable
	Failed    progress.Monitorable
}
