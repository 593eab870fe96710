// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/maxuser74/EnergyMeters/internal/convert"
	"github.com/maxuser74/EnergyMeters/internal/decode"
	"github.com/maxuser74/EnergyMeters/internal/readings"
	"github.com/maxuser74/EnergyMeters/internal/registry"
)

// ErrShortRead reports a response carrying fewer words than requested.
var ErrShortRead = errors.New("poller: short read")

// ReadMeter reads every definition in table order through one session,
// one round trip per definition. Failures are isolated per register: a
// failed read or decode marks that entry ERROR and processing continues.
func ReadMeter(m Meter, table *registry.Table, sess Session) readings.MeterReading {
	rec := readings.MeterReading{
		ID:        m.ID,
		Name:      m.Name,
		Cabinet:   m.Cabinet,
		Node:      m.Node,
		Endpoint:  m.Endpoint,
		Status:    readings.StatusOK,
		Timestamp: time.Now(),
		Registers: make(map[string]readings.Entry, table.Len()),
	}

	for _, def := range table.Definitions() {
		entry, err := readOne(sess, def)
		if err != nil {
			slog.Warn("register read failed",
				"meter", m.ID, "register", def.ID, "err", err)
			rec.Registers[def.ID] = readings.Entry{
				Description: def.Description,
				Value:       readings.Value{},
				Unit:        def.TargetUnit,
				Status:      readings.StatusError,
				Category:    def.Category,
			}
			rec.Status = readings.StatusPartial
			continue
		}
		rec.Registers[def.ID] = entry
	}

	return rec
}

// FailedReading is the record for a meter whose session could not be
// established. No registers are attempted.
func FailedReading(m Meter) readings.MeterReading {
	return readings.MeterReading{
		ID:        m.ID,
		Name:      m.Name,
		Cabinet:   m.Cabinet,
		Node:      m.Node,
		Endpoint:  m.Endpoint,
		Status:    readings.StatusFailed,
		Timestamp: time.Now(),
		Registers: map[string]readings.Entry{},
	}
}

func readOne(sess Session, def registry.Definition) (readings.Entry, error) {
	words, err := readBlock(sess, def)
	if err != nil {
		return readings.Entry{}, fmt.Errorf("read: %w", err)
	}

	raw, err := decode.Decode(words, def.DataType)
	if err != nil {
		return readings.Entry{}, fmt.Errorf("decode: %w", err)
	}

	value, matched := convert.Convert(raw, def.SourceUnit, def.TargetUnit, def.Factor)
	if !matched {
		slog.Warn("no unit conversion rule, passing value through",
			"register", def.ID, "source", def.SourceUnit, "target", def.TargetUnit)
	}

	return readings.Entry{
		Description: def.Description,
		Value:       readings.OK(value),
		Unit:        def.TargetUnit,
		Status:      readings.StatusOK,
		Category:    def.Category,
	}, nil
}

// readBlock fetches exactly WordCount words for one definition.
func readBlock(sess Session, def registry.Definition) ([]uint16, error) {
	words, err := sess.ReadWords(uint16(def.StartAddress), uint16(def.WordCount))
	if err != nil {
		return nil, err
	}
	if len(words) < def.WordCount {
		return nil, ErrShortRead
	}
	return words, nil
}
