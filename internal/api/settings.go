package api

import (
	"net/http"

	"gitea.jw6.us/james/elternrat/internal/store"
)

// GetSettings returns the current settings record.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.store.State().Settings)
}

// PatchSettings shallow-merges a partial settings object. This path does not
// go through the read-only gate; toggling read-only itself must always work.
func (h *Handler) PatchSettings(w http.ResponseWriter, r *http.Request) {
	var patch store.SettingsPatch
	if !h.decodeBody(w, r, &patch) {
		return
	}
	h.store.SetSettings(patch)
	h.respondJSON(w, http.StatusOK, h.store.State().Settings)
}
