package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"gitea.jw6.us/james/elternrat/internal/api"
	"gitea.jw6.us/james/elternrat/internal/config"
	"gitea.jw6.us/james/elternrat/internal/http/ratelimit"
	"gitea.jw6.us/james/elternrat/internal/metrics"
)

// Pinger reports whether durable storage is reachable. The file gateway has
// nothing to probe and simply does not implement it.
type Pinger interface {
	Ping() error
}

// NewRouter wires all HTTP routes for the API and the calendar feed.
func NewRouter(cfg *config.Config, handler *api.Handler, pinger Pinger) http.Handler {
	r := chi.NewRouter()

	// Outbound-collaborator routes: 2 requests per second, burst of 5
	outboundRateLimiter := ratelimit.New(rate.Limit(2), 5, 5*time.Minute, cfg.TrustedProxies)

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware())

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if pinger != nil {
			if err := pinger.Ping(); err != nil {
				http.Error(w, "unready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.PrometheusEnabled {
		r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			metrics.Handler().ServeHTTP(w, r)
		})
	}

	r.Get("/calendar.ics", handler.CalendarFeed)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", handler.ExportState)
		r.Put("/state", handler.ImportState)
		r.Post("/reset", handler.ResetState)

		r.Get("/settings", handler.GetSettings)
		r.Patch("/settings", handler.PatchSettings)

		r.Route("/members", func(r chi.Router) {
			r.Get("/", handler.ListMembers)
			r.Post("/", handler.UpsertMember)
			r.Put("/{id}", handler.UpsertMember)
			r.Delete("/{id}", handler.DeleteMember)
		})
		r.Route("/meetings", func(r chi.Router) {
			r.Get("/", handler.ListMeetings)
			r.Post("/", handler.UpsertMeeting)
			r.Put("/{id}", handler.UpsertMeeting)
			r.Delete("/{id}", handler.DeleteMeeting)
		})
		r.Route("/proposals", func(r chi.Router) {
			r.Get("/", handler.ListProposals)
			r.Post("/", handler.UpsertProposal)
			r.Put("/{id}", handler.UpsertProposal)
			r.Delete("/{id}", handler.DeleteProposal)
		})
		r.Route("/events", func(r chi.Router) {
			r.Get("/", handler.ListEvents)
			r.Post("/", handler.UpsertEvent)
			r.Put("/{id}", handler.UpsertEvent)
			r.Delete("/{id}", handler.DeleteEvent)
			r.With(outboundRateLimiter.Middleware()).Post("/sync", handler.SyncEvents)
		})
		r.Route("/documents", func(r chi.Router) {
			r.Get("/", handler.ListDocuments)
			r.Post("/", handler.UpsertDocument)
			r.Put("/{id}", handler.UpsertDocument)
			r.Delete("/{id}", handler.DeleteDocument)
			r.With(outboundRateLimiter.Middleware()).Post("/upload", handler.UploadDocument)
		})
		r.Route("/email-templates", func(r chi.Router) {
			r.Get("/", handler.ListTemplates)
			r.Post("/", handler.UpsertTemplate)
			r.Put("/{id}", handler.UpsertTemplate)
			r.Delete("/{id}", handler.DeleteTemplate)
		})
		r.Route("/announcements", func(r chi.Router) {
			r.Get("/", handler.ListAnnouncements)
			r.Post("/", handler.UpsertAnnouncement)
			r.Put("/{id}", handler.UpsertAnnouncement)
			r.Delete("/{id}", handler.DeleteAnnouncement)
		})

		r.With(outboundRateLimiter.Middleware()).Post("/email/send", handler.SendEmail)
		r.With(outboundRateLimiter.Middleware()).Get("/backend/ping", handler.PingBackend)
	})

	return r
}
