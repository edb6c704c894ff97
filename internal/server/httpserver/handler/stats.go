// Package handler provides HTTP request handlers for oatable.
package handler

import "net/http"

// handleStats handles GET /v1/stats.
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, freed := h.store.Stats()

	h.writeJSON(w, r, http.StatusOK, StatsResponse{
		TableSize:  stats.TableSize,
		Count:      stats.Count,
		LoadFactor: stats.LoadFactor,
		Probes:     stats.Probes,
		Expansions: stats.Expansions,
		BytesFreed: freed,
	})
}

// handleSlots handles GET /v1/slots.
func (h *Handler) handleSlots(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Snapshot()

	slots := make([]SlotResponse, len(snap))
	for i, s := range snap {
		slots[i] = SlotResponse{
			Index: i,
			State: s.State.String(),
			Key:   s.Key,
		}
	}

	h.writeJSON(w, r, http.StatusOK, SlotsResponse{
		TableSize: len(snap),
		Slots:     slots,
	})
}
