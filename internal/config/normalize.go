// internal/config/normalize.go
package config

import (
	"fmt"
	"log/slog"
)

// Poll defaults, applied when the corresponding field is zero.
const (
	DefaultIntervalMs       = 30000
	DefaultConnectTimeoutMs = 3000
	DefaultRequestTimeoutMs = 1000
	DefaultListen           = ":8080"
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	em := &cfg.EnergyMeters

	if em.Poll.IntervalMs == 0 {
		em.Poll.IntervalMs = DefaultIntervalMs
	}
	if em.Poll.ConnectTimeoutMs == 0 {
		em.Poll.ConnectTimeoutMs = DefaultConnectTimeoutMs
	}
	if em.Poll.RequestTimeoutMs == 0 {
		em.Poll.RequestTimeoutMs = DefaultRequestTimeoutMs
	}
	if em.Listen == "" {
		em.Listen = DefaultListen
	}

	// ------------------------------------------------------------
	// METER IDENTITY DERIVATION
	// ------------------------------------------------------------

	endpoints := make(map[int]string, len(em.Cabinets))
	for _, c := range em.Cabinets {
		endpoints[c.ID] = c.Endpoint
	}

	// Meters referencing an unknown cabinet are dropped, not fatal.
	kept := em.Meters[:0]
	for _, m := range em.Meters {
		ep, ok := endpoints[m.Cabinet]
		if !ok {
			slog.Warn("unknown cabinet for meter, dropping",
				"cabinet", m.Cabinet, "meter", m.Name)
			continue
		}
		m.ID = fmt.Sprintf("cabinet%d_node%d", m.Cabinet, m.Node)
		m.Endpoint = ep
		if m.Name == "" {
			m.Name = m.ID
		}
		kept = append(kept, m)
	}
	em.Meters = kept
}
