// internal/config/validate.go
package config

import (
	"fmt"
	"strings"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	em := cfg.EnergyMeters

	if strings.TrimSpace(em.RegistersFile) == "" {
		return fmt.Errorf("registers_file is required")
	}

	// ------------------------------------------------------------
	// CABINET VALIDATION
	// ------------------------------------------------------------

	if len(em.Cabinets) == 0 {
		return fmt.Errorf("at least one cabinet is required")
	}

	cabinets := make(map[int]bool)
	for _, c := range em.Cabinets {
		if strings.TrimSpace(c.Endpoint) == "" {
			return fmt.Errorf("cabinet %d: endpoint is required", c.ID)
		}
		if cabinets[c.ID] {
			return fmt.Errorf("duplicate cabinet id %d", c.ID)
		}
		cabinets[c.ID] = true
	}

	// ------------------------------------------------------------
	// METER VALIDATION
	// ------------------------------------------------------------

	if len(em.Meters) == 0 {
		return fmt.Errorf("at least one meter is required")
	}

	// key = cabinet | node
	seen := make(map[string]string)
	for _, m := range em.Meters {
		if m.Node < 1 || m.Node > 247 {
			return fmt.Errorf("meter %q: node %d out of range 1-247", m.Name, m.Node)
		}

		key := fmt.Sprintf("%d|%d", m.Cabinet, m.Node)
		if prev, exists := seen[key]; exists {
			return fmt.Errorf(
				"duplicate meter: cabinet=%d node=%d used by %q and %q",
				m.Cabinet, m.Node, prev, m.Name,
			)
		}
		seen[key] = m.Name
	}

	// ------------------------------------------------------------
	// POLL VALIDATION
	// ------------------------------------------------------------

	if em.Poll.IntervalMs < 0 {
		return fmt.Errorf("poll interval_ms must be >= 0")
	}
	if em.Poll.ConnectTimeoutMs < 0 || em.Poll.RequestTimeoutMs < 0 {
		return fmt.Errorf("poll timeouts must be >= 0")
	}

	return nil
}
