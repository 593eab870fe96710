// internal/api/api.go
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/maxuser74/EnergyMeters/internal/category"
	"github.com/maxuser74/EnergyMeters/internal/readings"
	"github.com/maxuser74/EnergyMeters/internal/registry"
)

// Handler serves the readings API. Refresh and Reload are provided by the
// composition root; handlers stay transport-only.
type Handler struct {
	Store   *readings.Store
	Tables  *registry.Holder
	Refresh func()              // re-poll every meter now
	Reload  func() (int, error) // swap the definition table, returns its size

	// RefreshMeter re-polls one meter by id. The bool is false for ids
	// not under management.
	RefreshMeter func(id string) (readings.MeterReading, bool)
}

func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/readings", h.getReadings)
	mux.HandleFunc("GET /api/configuration", h.getConfiguration)
	mux.HandleFunc("POST /api/refresh", h.postRefresh)
	mux.HandleFunc("POST /api/refresh/{id}", h.postRefreshMeter)
	mux.HandleFunc("POST /api/reload", h.postReload)
	return mux
}

type readingsResponse struct {
	Readings   map[string]readings.MeterReading `json:"readings"`
	LastUpdate time.Time                        `json:"last_update"`
	Status     string                           `json:"status"`
}

func (h *Handler) getReadings(w http.ResponseWriter, r *http.Request) {
	snap, updated := h.Store.Snapshot()
	writeJSON(w, http.StatusOK, readingsResponse{
		Readings:   snap,
		LastUpdate: updated,
		Status:     connectionStatus(snap),
	})
}

// connectionStatus summarizes meter reachability for the dashboard.
func connectionStatus(snap map[string]readings.MeterReading) string {
	if len(snap) == 0 {
		return "No readings yet"
	}
	ok := 0
	for _, rec := range snap {
		if rec.Status == readings.StatusOK || rec.Status == readings.StatusPartial {
			ok++
		}
	}
	if ok == 0 {
		return "All connections failed"
	}
	return fmt.Sprintf("Connected (%d/%d meters)", ok, len(snap))
}

type registerSummary struct {
	ID           string            `json:"id"`
	Description  string            `json:"description"`
	StartAddress int               `json:"start_address"`
	EndAddress   int               `json:"end_address"`
	WordCount    int               `json:"word_count"`
	DataType     string            `json:"data_type"`
	SourceUnit   string            `json:"source_unit"`
	TargetUnit   string            `json:"target_unit"`
	Factor       *float64          `json:"factor,omitempty"`
	Category     category.Category `json:"category"`
}

type configurationResponse struct {
	Registers []registerSummary `json:"registers"`
	Count     int               `json:"count"`
}

func (h *Handler) getConfiguration(w http.ResponseWriter, r *http.Request) {
	table := h.Tables.Current()
	regs := make([]registerSummary, 0, table.Len())
	for _, d := range table.Definitions() {
		regs = append(regs, registerSummary{
			ID:           d.ID,
			Description:  d.Description,
			StartAddress: d.StartAddress,
			EndAddress:   d.EndAddress,
			WordCount:    d.WordCount,
			DataType:     d.DataType.String(),
			SourceUnit:   d.SourceUnit,
			TargetUnit:   d.TargetUnit,
			Factor:       d.Factor,
			Category:     d.Category,
		})
	}
	writeJSON(w, http.StatusOK, configurationResponse{Registers: regs, Count: len(regs)})
}

func (h *Handler) postRefresh(w http.ResponseWriter, r *http.Request) {
	h.Refresh()
	snap, updated := h.Store.Snapshot()
	writeJSON(w, http.StatusOK, readingsResponse{
		Readings:   snap,
		LastUpdate: updated,
		Status:     connectionStatus(snap),
	})
}

func (h *Handler) postRefreshMeter(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rec, ok := h.RefreshMeter(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"status": "error",
			"error":  "unknown meter: " + id,
		})
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) postReload(w http.ResponseWriter, r *http.Request) {
	n, err := h.Reload()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "error",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"registers": n,
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding response", "err", err)
	}
}
