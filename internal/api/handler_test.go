package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"gitea.jw6.us/james/elternrat/internal/backend"
	"gitea.jw6.us/james/elternrat/internal/config"
	"gitea.jw6.us/james/elternrat/internal/schulhelfer"
	"gitea.jw6.us/james/elternrat/internal/store"
)

var testNow = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

// newTestHandler builds a handler on an in-memory store with a fixed clock
// and deterministic ids.
func newTestHandler(t *testing.T, seed *store.PersistedState) (*Handler, *store.Store) {
	t.Helper()
	gw := &store.MemoryGateway{Seed: seed, Now: func() time.Time { return testNow }}
	st := store.Open(gw, store.WithClock(func() time.Time { return testNow }))

	cfg := &config.Config{}
	h := NewHandler(cfg, st, &schulhelfer.Client{}, &backend.Client{})
	seq := 0
	h.newID = func() string {
		seq++
		return fmt.Sprintf("test-id-%d", seq)
	}
	return h, st
}

// testRouter mounts the handler the same way the server router does, so path
// parameters resolve through chi.
func testRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/state", h.ExportState)
	r.Put("/api/state", h.ImportState)
	r.Post("/api/reset", h.ResetState)
	r.Get("/api/settings", h.GetSettings)
	r.Patch("/api/settings", h.PatchSettings)
	r.Get("/api/members", h.ListMembers)
	r.Post("/api/members", h.UpsertMember)
	r.Put("/api/members/{id}", h.UpsertMember)
	r.Delete("/api/members/{id}", h.DeleteMember)
	r.Post("/api/events", h.UpsertEvent)
	r.Post("/api/events/sync", h.SyncEvents)
	r.Post("/api/documents/upload", h.UploadDocument)
	r.Post("/api/email/send", h.SendEmail)
	r.Get("/calendar.ics", h.CalendarFeed)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}
