// Package handler provides HTTP request handlers for oatable.
package handler

import (
	"encoding/json"
	"net/http"
)

// handlePutKey handles POST /v1/keys.
//
// Posting an existing key overwrites its value in place.
func (h *Handler) handlePutKey(w http.ResponseWriter, r *http.Request) {
	var req PutKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, "OT-ARG-4001", "invalid request body", err.Error())
		return
	}

	if err := h.store.Set(r.Context(), req.Key, []byte(req.Value)); err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusCreated, KeyResponse{
		Key:   req.Key,
		Value: req.Value,
	})
}

// handleGetKey handles GET /v1/keys/{key}.
func (h *Handler) handleGetKey(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	value, err := h.store.Get(r.Context(), key)
	if err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, KeyResponse{
		Key:   key,
		Value: string(value),
	})
}

// handleDeleteKey handles DELETE /v1/keys/{key}.
func (h *Handler) handleDeleteKey(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	if err := h.store.Delete(r.Context(), key); err != nil {
		h.handleStoreError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, map[string]string{"key": key})
}

// handleClear handles DELETE /v1/keys.
func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	removed := h.store.Count()
	h.store.Clear(r.Context())

	h.writeJSON(w, r, http.StatusOK, ClearResponse{Removed: removed})
}
