package api

import (
	"errors"
	"net/http"

	httperrors "gitea.jw6.us/james/elternrat/internal/http/errors"
	"gitea.jw6.us/james/elternrat/internal/schulhelfer"
)

// SyncEvents pulls the full remote event list and replaces every previously
// synced event of the active school year with the fresh set. Local events are
// untouched; synced events missing from the new pull disappear.
func (h *Handler) SyncEvents(w http.ResponseWriter, r *http.Request) {
	state := h.store.State()
	year := state.Settings.ActiveSchoolYear

	remote, err := h.schulhelfer.GetEvents(r.Context(), state.Settings.Schulhelfer)
	if err != nil {
		if errors.Is(err, schulhelfer.ErrDisabled) || errors.Is(err, schulhelfer.ErrMissingURL) {
			httperrors.ConflictError(w, r, err)
			return
		}
		httperrors.BadGatewayError(w, r, err)
		return
	}

	mapped := schulhelfer.MapEvents(remote, state.Entities.Events, year, h.newID)
	h.store.ReplaceSyncedEvents(year, mapped)

	h.respondJSON(w, http.StatusOK, map[string]any{
		"schuljahr": year,
		"synced":    len(mapped),
	})
}
