// Package progress polls in-flight hashing tasks and pushes snapshots to an observer.
package progress

import (
	"context"
	"time"

	"github.com/sdejongh/hashcompare/pkg/models"
)

// DefaultInterval is the polling period used when none is configured
const DefaultInterval = 250 * time.Millisecond

// Source is a hashing task that can be observed
type Source interface {
	Progress() models.SideProgress
}

// Observer receives progress snapshots. It is called from the monitor's goroutine.
type Observer func(models.ProgressSnapshot)

// Monitor periodically reports the progress of two hashing tasks
type Monitor struct {
	interval time.Duration
	observer Observer
}

// NewMonitor creates a monitor. A non-positive interval selects DefaultInterval.
func NewMonitor(interval time.Duration, observer Observer) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{interval: interval, observer: observer}
}

// Interval returns the polling period
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// Run emits a snapshot every interval until both sources are complete, in
// which case a final snapshot is emitted, or until ctx is done. It reports
// whether the final snapshot was emitted.
func (m *Monitor) Run(ctx context.Context, one, two Source) bool {
	if m.observer == nil {
		return false
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			snap := Snapshot(one, two)
			m.observer(snap)
			if snap.Done() {
				return true
			}
		}
	}
}

// Snapshot reads both sources once
func Snapshot(one, two Source) models.ProgressSnapshot {
	return models.ProgressSnapshot{
		One: one.Progress(),
		Two: two.Progress(),
	}
}
