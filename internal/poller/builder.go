// internal/poller/builder.go
package poller

import (
	"time"

	cfg "github.com/maxuser74/EnergyMeters/internal/config"
	pmodbus "github.com/maxuser74/EnergyMeters/internal/poller/modbus"
	"github.com/maxuser74/EnergyMeters/internal/readings"
	"github.com/maxuser74/EnergyMeters/internal/registry"
)

// Build constructs a Runner for one configured meter. The dialer performs
// ONE connection attempt per call; the runner dials fresh every cycle, so
// a dead endpoint costs one FAILED record per cycle and nothing more.
func Build(m cfg.MeterConfig, poll cfg.PollConfig, tables *registry.Holder, store *readings.Store) *Runner {
	dial := func() (Session, error) {
		return pmodbus.Dial(pmodbus.Config{
			Endpoint:       m.Endpoint,
			SlaveID:        byte(m.Node),
			ConnectTimeout: time.Duration(poll.ConnectTimeoutMs) * time.Millisecond,
			RequestTimeout: time.Duration(poll.RequestTimeoutMs) * time.Millisecond,
		})
	}

	meter := Meter{
		ID:       m.ID,
		Name:     m.Name,
		Cabinet:  m.Cabinet,
		Node:     m.Node,
		Endpoint: m.Endpoint,
	}

	return NewRunner(meter, dial, tables, store,
		time.Duration(poll.IntervalMs)*time.Millisecond)
}
