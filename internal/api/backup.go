package api

import (
	"errors"
	"io"
	"net/http"

	httperrors "gitea.jw6.us/james/elternrat/internal/http/errors"
	"gitea.jw6.us/james/elternrat/internal/store"
)

// ExportState streams the full document as pretty-printed JSON for a
// user-initiated backup.
func (h *Handler) ExportState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.URL.Query().Get("download") != "" {
		w.Header().Set("Content-Disposition", `attachment; filename="elternrat-backup.json"`)
	}
	_, _ = io.WriteString(w, h.store.Export())
}

// ImportState replaces the document with an uploaded backup. Validation is
// strict: a malformed or version-mismatched document is rejected with 422 and
// the held state stays untouched.
func (h *Handler) ImportState(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		httperrors.BadRequestError(w, r, err, "could not read body")
		return
	}
	if err := h.store.Import(string(raw)); err != nil {
		var formatErr *store.FormatError
		if errors.As(err, &formatErr) {
			httperrors.UnprocessableError(w, r, err)
			return
		}
		httperrors.InternalError(w, r, err, "import failed")
		return
	}
	httperrors.LogInfo(r, "document imported")
	w.WriteHeader(http.StatusNoContent)
}

// ResetState replaces the document with a fresh default state.
func (h *Handler) ResetState(w http.ResponseWriter, r *http.Request) {
	h.store.ResetAll()
	httperrors.LogInfo(r, "document reset to defaults")
	w.WriteHeader(http.StatusNoContent)
}
