// internal/registry/types.go
package registry

import (
	"sync/atomic"

	"github.com/maxuser74/EnergyMeters/internal/category"
	"github.com/maxuser74/EnergyMeters/internal/decode"
)

// Definition is one fully resolved measurement definition.
type Definition struct {
	ID           string
	Description  string
	DataType     decode.DataType
	StartAddress int
	EndAddress   int
	WordCount    int
	SourceUnit   string
	TargetUnit   string
	Factor       *float64
	Category     category.Category
}

// Table is an immutable, configuration-ordered definition list.
// A reload builds a fresh Table; cycles in progress keep the one they
// started with.
type Table struct {
	defs []Definition
}

// Definitions returns the definitions in configuration order.
// The returned slice is read-only.
func (t *Table) Definitions() []Definition {
	return t.defs
}

func (t *Table) Len() int {
	return len(t.defs)
}

// Holder publishes the current table. Swap replaces it atomically for
// future poll cycles without touching cycles already in progress.
type Holder struct {
	v atomic.Pointer[Table]
}

func NewHolder(t *Table) *Holder {
	h := &Holder{}
	h.v.Store(t)
	return h
}

func (h *Holder) Current() *Table {
	return h.v.Load()
}

func (h *Holder) Swap(t *Table) {
	h.v.Store(t)
}
