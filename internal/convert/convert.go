// internal/convert/convert.go
package convert

import (
	"math"
	"strings"
)

type pair struct {
	source, target string
}

// rules maps a normalized (source, target) unit pair to a divisor.
// Keys are normalized: lowercase, spaces and underscores stripped.
var rules = map[pair]float64{
	{"tenthofwatts", "kwh"}: 10000,
	{"w/10", "kwh"}:         10000,
	{"watts", "kwh"}:        3600000,
	{"wh", "kwh"}:           1000,
	{"tenthofwatts", "w"}:   10,
	{"w/10", "w"}:           10,
	{"a", "a"}:              1,
	{"v", "v"}:              1,
}

// Convert maps a decoded value into the target unit. Priority, in order:
// an explicit factor always wins, regardless of the unit strings; equal
// normalized units pass through unchanged; otherwise the static rule
// table applies. Converted values are rounded to 3 decimals.
//
// The bool reports whether any rule applied. False means the value passed
// through because no factor, identity, or table rule matched; the caller
// owns the warning.
func Convert(value float64, sourceUnit, targetUnit string, factor *float64) (float64, bool) {
	if factor != nil {
		return round3(value * *factor), true
	}

	source := normalize(sourceUnit)
	target := normalize(targetUnit)
	if source == target {
		return value, true
	}

	if div, ok := rules[pair{source, target}]; ok {
		return round3(value / div), true
	}

	return value, false
}

func normalize(unit string) string {
	unit = strings.ToLower(unit)
	unit = strings.ReplaceAll(unit, " ", "")
	return strings.ReplaceAll(unit, "_", "")
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
