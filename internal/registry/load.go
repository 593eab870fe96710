// internal/registry/load.go
package registry

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/maxuser74/EnergyMeters/internal/category"
	"github.com/maxuser74/EnergyMeters/internal/decode"
)

// Row is one raw measurement definition as configured. Field names follow
// the register table columns of the metering sheets.
type Row struct {
	Register    int      `yaml:"register"` // end address of the value
	Description string   `yaml:"description"`
	Length      string   `yaml:"length"` // data type tag, free text
	Readings    string   `yaml:"readings"`
	ConvertTo   string   `yaml:"convert_to"`
	Factor      *float64 `yaml:"factor"`
	Report      string   `yaml:"report"`
	Type        string   `yaml:"type"` // category tag, optional
}

type registersFile struct {
	Registers []Row `yaml:"registers"`
}

// Load reads the register table from a YAML file. Only rows flagged for
// reporting participate; invalid rows are skipped with a warning and
// never abort the load.
func Load(path string) (*Table, error) {
	bb, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: reading %s: %w", path, err)
	}
	var f registersFile
	if err := yaml.Unmarshal(bb, &f); err != nil {
		return nil, fmt.Errorf("registry: decoding %s: %w", path, err)
	}
	return FromRows(f.Registers), nil
}

// FromRows builds a table from a pre-parsed sequence of rows.
func FromRows(rows []Row) *Table {
	defs := make([]Definition, 0, len(rows))
	for i, r := range rows {
		if !reportEnabled(r.Report) {
			slog.Debug("register not reported, skipping", "row", i, "description", r.Description)
			continue
		}

		// Addresses beyond the 16-bit register space would truncate at
		// read time and hit the wrong register.
		if strings.TrimSpace(r.Description) == "" || strings.TrimSpace(r.Length) == "" ||
			r.Register <= 0 || r.Register > 0xFFFF {
			slog.Warn("invalid register row, skipping",
				"row", i, "register", r.Register, "description", r.Description)
			continue
		}

		dt := decode.Parse(r.Length)
		if dt == decode.Unknown {
			slog.Warn("unsupported data type, assuming float",
				"row", i, "register", r.Register, "type", r.Length)
		}

		start, count := Resolve(r.Register, dt)
		if start < 0 {
			slog.Warn("invalid register row, skipping",
				"row", i, "register", r.Register, "reason", "address underflow")
			continue
		}

		target := r.ConvertTo
		if strings.TrimSpace(target) == "" {
			target = r.Readings
		}

		defs = append(defs, Definition{
			ID:           fmt.Sprintf("reg_%d", start),
			Description:  r.Description,
			DataType:     dt,
			StartAddress: start,
			EndAddress:   r.Register,
			WordCount:    count,
			SourceUnit:   r.Readings,
			TargetUnit:   target,
			Factor:       r.Factor,
			Category:     category.Classify(r.Type, r.Description),
		})
	}
	return &Table{defs: defs}
}

// Resolve maps an end address and data type to the read geometry:
// start = end - (wordCount - 1). Pure and total.
func Resolve(end int, dt decode.DataType) (start, count int) {
	count = dt.WordCount()
	return end - (count - 1), count
}

func reportEnabled(flag string) bool {
	switch strings.ToLower(strings.TrimSpace(flag)) {
	case "yes", "y", "1", "true":
		return true
	}
	return false
}
