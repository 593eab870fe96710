// internal/registry/load_test.go
package registry

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/maxuser74/EnergyMeters/internal/category"
	"github.com/maxuser74/EnergyMeters/internal/decode"
)

// recordingHandler captures log messages for assertion.
type recordingHandler struct {
	mu   sync.Mutex
	msgs []string
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.msgs = append(h.msgs, r.Message)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

// row builds a minimal valid float row.
func row(register int, description string) Row {
	return Row{
		Register:    register,
		Description: description,
		Length:      "Float",
		Readings:    "V",
		ConvertTo:   "V",
		Report:      "Yes",
	}
}

func TestFromRowsFloatGeometry(t *testing.T) {
	table := FromRows([]Row{row(373, "Average RMS voltage")})
	if table.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", table.Len())
	}
	d := table.Definitions()[0]
	if d.StartAddress != 372 || d.EndAddress != 373 || d.WordCount != 2 {
		t.Fatalf("geometry = start %d end %d count %d, want 372/373/2",
			d.StartAddress, d.EndAddress, d.WordCount)
	}
	if d.ID != "reg_372" {
		t.Fatalf("ID = %q, want reg_372", d.ID)
	}
	if d.DataType != decode.Float32 {
		t.Fatalf("DataType = %v, want Float32", d.DataType)
	}
}

func TestFromRowsInt64Geometry(t *testing.T) {
	r := row(103, "Active energy total")
	r.Length = "Signed Long Long"
	r.Readings = "Wh"
	r.ConvertTo = "kWh"
	table := FromRows([]Row{r})
	d := table.Definitions()[0]
	if d.StartAddress != 100 || d.WordCount != 4 {
		t.Fatalf("geometry = start %d count %d, want 100/4", d.StartAddress, d.WordCount)
	}
	if d.DataType != decode.Int64Scaled {
		t.Fatalf("DataType = %v, want Int64Scaled", d.DataType)
	}
}

// Unknown data type tags fall back to the float geometry.
func TestFromRowsUnknownTypeAssumesFloat(t *testing.T) {
	r := row(373, "Mystery value")
	r.Length = "double"
	table := FromRows([]Row{r})
	d := table.Definitions()[0]
	if d.StartAddress != 372 || d.WordCount != 2 {
		t.Fatalf("geometry = start %d count %d, want 372/2", d.StartAddress, d.WordCount)
	}
	if d.DataType != decode.Unknown {
		t.Fatalf("DataType = %v, want Unknown", d.DataType)
	}
}

// An unrecognized data type tag still loads, and warns exactly once.
func TestFromRowsUnknownTypeWarnsOnce(t *testing.T) {
	prev := slog.Default()
	rh := &recordingHandler{}
	slog.SetDefault(slog.New(rh))
	defer slog.SetDefault(prev)

	unknown := row(373, "Mystery value")
	unknown.Length = "double"
	table := FromRows([]Row{unknown, row(391, "Active power")})

	if table.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", table.Len())
	}

	warns := 0
	for _, m := range rh.msgs {
		if m == "unsupported data type, assuming float" {
			warns++
		}
	}
	if warns != 1 {
		t.Fatalf("warnings = %d, want exactly 1", warns)
	}
}

func TestFromRowsReportFilter(t *testing.T) {
	cases := []struct {
		flag string
		want bool
	}{
		{"Yes", true},
		{"yes", true},
		{"y", true},
		{"1", true},
		{"TRUE", true},
		{" true ", true},
		{"no", false},
		{"n", false},
		{"0", false},
		{"", false},
	}
	for _, c := range cases {
		r := row(373, "v")
		r.Report = c.flag
		got := FromRows([]Row{r}).Len() == 1
		if got != c.want {
			t.Errorf("report flag %q: included=%v, want %v", c.flag, got, c.want)
		}
	}
}

// Bad rows are skipped; the rest of the table still loads.
func TestFromRowsSkipsInvalidRows(t *testing.T) {
	missingDescription := row(373, "")
	missingType := row(375, "Current L1")
	missingType.Length = ""
	missingRegister := row(0, "Current L2")
	underflow := Row{Register: 2, Description: "e", Length: "long long", Report: "yes"}
	beyondAddressSpace := row(70000, "Current L3")

	table := FromRows([]Row{
		missingDescription,
		missingType,
		missingRegister,
		underflow,
		beyondAddressSpace,
		row(391, "Active power"),
	})
	if table.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", table.Len())
	}
	if table.Definitions()[0].Description != "Active power" {
		t.Fatalf("wrong surviving row: %q", table.Definitions()[0].Description)
	}
}

func TestFromRowsTargetDefaultsToSource(t *testing.T) {
	r := row(373, "v")
	r.Readings = "A"
	r.ConvertTo = ""
	d := FromRows([]Row{r}).Definitions()[0]
	if d.TargetUnit != "A" {
		t.Fatalf("TargetUnit = %q, want A", d.TargetUnit)
	}
}

func TestFromRowsCategory(t *testing.T) {
	r := row(373, "Line current L1")
	r.Type = "Currents"
	d := FromRows([]Row{r}).Definitions()[0]
	if d.Category != category.Current {
		t.Fatalf("Category = %q, want current", d.Category)
	}
}

func TestResolve(t *testing.T) {
	if start, count := Resolve(373, decode.Float32); start != 372 || count != 2 {
		t.Fatalf("Resolve(373, Float32) = %d,%d", start, count)
	}
	if start, count := Resolve(103, decode.Int64Scaled); start != 100 || count != 4 {
		t.Fatalf("Resolve(103, Int64Scaled) = %d,%d", start, count)
	}
	if start, count := Resolve(9, decode.Unknown); start != 8 || count != 2 {
		t.Fatalf("Resolve(9, Unknown) = %d,%d", start, count)
	}
}

func TestHolderSwap(t *testing.T) {
	a := FromRows([]Row{row(373, "a")})
	b := FromRows([]Row{row(373, "a"), row(375, "b")})

	h := NewHolder(a)
	snap := h.Current()

	h.Swap(b)

	if snap.Len() != 1 {
		t.Fatalf("captured table changed after swap: Len() = %d", snap.Len())
	}
	if h.Current().Len() != 2 {
		t.Fatalf("Current().Len() = %d, want 2", h.Current().Len())
	}
}
