// internal/readings/record.go
package readings

import (
	"encoding/json"
	"time"

	"github.com/maxuser74/EnergyMeters/internal/category"
)

// Value is a register reading rendered for the API: a number on success,
// the "N/A" marker on error.
type Value struct {
	Num   float64
	Valid bool
}

func OK(v float64) Value {
	return Value{Num: v, Valid: true}
}

func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid {
		return json.Marshal(ValueNA)
	}
	return json.Marshal(v.Num)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err != nil {
		// Any non-numeric value is the error marker.
		*v = Value{}
		return nil
	}
	*v = Value{Num: num, Valid: true}
	return nil
}

// Entry is one register reading within a record.
type Entry struct {
	Description string            `json:"description"`
	Value       Value             `json:"value"`
	Unit        string            `json:"unit"`
	Status      string            `json:"status"`
	Category    category.Category `json:"category"`
}

// MeterReading is the complete result of one poll cycle for one meter.
// It is produced fresh each cycle and never mutated afterwards.
type MeterReading struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Cabinet   int              `json:"cabinet"`
	Node      int              `json:"node"`
	Endpoint  string           `json:"endpoint"`
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Registers map[string]Entry `json:"registers"`
}
