// internal/poller/runner.go
package poller

import (
	"context"
	"log/slog"
	"time"

	"github.com/maxuser74/EnergyMeters/internal/readings"
	"github.com/maxuser74/EnergyMeters/internal/registry"
)

// Runner drives one meter on a fixed interval. The session is dialed per
// cycle and closed before the next; a cycle keeps the table it started
// with even if a reload swaps it mid-flight.
type Runner struct {
	meter    Meter
	dial     Dialer
	tables   *registry.Holder
	store    *readings.Store
	interval time.Duration
}

func NewRunner(m Meter, dial Dialer, tables *registry.Holder, store *readings.Store, interval time.Duration) *Runner {
	return &Runner{
		meter:    m,
		dial:     dial,
		tables:   tables,
		store:    store,
		interval: interval,
	}
}

// Run polls until the context is cancelled. One goroutine per meter; a
// meter's failure never touches another meter's cycle. The first cycle
// runs immediately.
func (r *Runner) Run(ctx context.Context) {
	r.store.Put(r.PollOnce())

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.store.Put(r.PollOnce())
		}
	}
}

// PollOnce performs one complete cycle for the meter. A failed dial
// yields a FAILED record; everything else is register-level.
func (r *Runner) PollOnce() readings.MeterReading {
	table := r.tables.Current()

	sess, err := r.dial()
	if err != nil {
		slog.Error("meter connection failed",
			"meter", r.meter.ID, "endpoint", r.meter.Endpoint, "err", err)
		return FailedReading(r.meter)
	}
	defer sess.Close()

	return ReadMeter(r.meter, table, sess)
}

// MeterID identifies the meter this runner owns.
func (r *Runner) MeterID() string {
	return r.meter.ID
}
