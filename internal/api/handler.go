// Package api serves the JSON surface the single-page UI talks to. Handlers
// read the store's current document and call exactly one action per request;
// the store owns all consistency rules, including the read-only gate.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"gitea.jw6.us/james/elternrat/internal/backend"
	"gitea.jw6.us/james/elternrat/internal/config"
	httperrors "gitea.jw6.us/james/elternrat/internal/http/errors"
	"gitea.jw6.us/james/elternrat/internal/schulhelfer"
	"gitea.jw6.us/james/elternrat/internal/store"
)

// Handler carries the store handle and the two collaborator clients.
type Handler struct {
	cfg         *config.Config
	store       *store.Store
	schulhelfer *schulhelfer.Client
	backend     *backend.Client
	newID       func() string
}

// NewHandler wires the API surface. Nil clients default to plain HTTP clients.
func NewHandler(cfg *config.Config, st *store.Store, sh *schulhelfer.Client, be *backend.Client) *Handler {
	if sh == nil {
		sh = &schulhelfer.Client{}
	}
	if be == nil {
		be = &backend.Client{}
	}
	return &Handler{cfg: cfg, store: st, schulhelfer: sh, backend: be, newID: uuid.NewString}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody parses the request body into dst, answering 400 on failure.
// Returns false when the request is already handled.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httperrors.BadRequestError(w, r, err, "invalid JSON body")
		return false
	}
	return true
}
