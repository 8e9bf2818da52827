package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httperrors "gitea.jw6.us/james/elternrat/internal/http/errors"
	"gitea.jw6.us/james/elternrat/internal/store"
)

// resolveID reconciles the path id with the body id: an empty body id takes
// the path id, a conflicting one is rejected. Create routes pass an empty
// path id and get a minted id when the body has none.
func (h *Handler) resolveID(w http.ResponseWriter, r *http.Request, bodyID string) (string, bool) {
	pathID := chi.URLParam(r, "id")
	switch {
	case pathID == "" && bodyID == "":
		return h.newID(), true
	case pathID == "":
		return bodyID, true
	case bodyID == "" || bodyID == pathID:
		return pathID, true
	default:
		httperrors.BadRequestError(w, r, nil, "body id does not match URL id")
		return "", false
	}
}

// Members

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.store.State().Entities.Members)
}

func (h *Handler) UpsertMember(w http.ResponseWriter, r *http.Request) {
	var m store.Member
	if !h.decodeBody(w, r, &m) {
		return
	}
	id, ok := h.resolveID(w, r, m.ID)
	if !ok {
		return
	}
	m.ID = id
	h.store.UpsertMember(m)
	h.respondStored(w, id, func(e store.Entities) (any, bool) {
		for _, x := range e.Members {
			if x.ID == id {
				return x, true
			}
		}
		return nil, false
	})
}

func (h *Handler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteMember(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Meetings

func (h *Handler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.store.State().Entities.Meetings)
}

func (h *Handler) UpsertMeeting(w http.ResponseWriter, r *http.Request) {
	var m store.Meeting
	if !h.decodeBody(w, r, &m) {
		return
	}
	id, ok := h.resolveID(w, r, m.ID)
	if !ok {
		return
	}
	m.ID = id
	h.store.UpsertMeeting(m)
	h.respondStored(w, id, func(e store.Entities) (any, bool) {
		for _, x := range e.Meetings {
			if x.ID == id {
				return x, true
			}
		}
		return nil, false
	})
}

func (h *Handler) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteMeeting(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Proposals

func (h *Handler) ListProposals(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.store.State().Entities.Proposals)
}

func (h *Handler) UpsertProposal(w http.ResponseWriter, r *http.Request) {
	var p store.Proposal
	if !h.decodeBody(w, r, &p) {
		return
	}
	id, ok := h.resolveID(w, r, p.ID)
	if !ok {
		return
	}
	p.ID = id
	h.store.UpsertProposal(p)
	h.respondStored(w, id, func(e store.Entities) (any, bool) {
		for _, x := range e.Proposals {
			if x.ID == id {
				return x, true
			}
		}
		return nil, false
	})
}

func (h *Handler) DeleteProposal(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteProposal(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Events

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.store.State().Entities.Events)
}

func (h *Handler) UpsertEvent(w http.ResponseWriter, r *http.Request) {
	var e store.EventItem
	if !h.decodeBody(w, r, &e) {
		return
	}
	id, ok := h.resolveID(w, r, e.ID)
	if !ok {
		return
	}
	e.ID = id
	if e.Source == "" {
		e.Source = store.SourceLokal
	}
	h.store.UpsertEvent(e)
	h.respondStored(w, id, func(ents store.Entities) (any, bool) {
		for _, x := range ents.Events {
			if x.ID == id {
				return x, true
			}
		}
		return nil, false
	})
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteEvent(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Documents

func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.store.State().Entities.Documents)
}

func (h *Handler) UpsertDocument(w http.ResponseWriter, r *http.Request) {
	var d store.DocumentItem
	if !h.decodeBody(w, r, &d) {
		return
	}
	id, ok := h.resolveID(w, r, d.ID)
	if !ok {
		return
	}
	d.ID = id
	h.store.UpsertDocument(d)
	h.respondStored(w, id, func(e store.Entities) (any, bool) {
		for _, x := range e.Documents {
			if x.ID == id {
				return x, true
			}
		}
		return nil, false
	})
}

func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteDocument(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Email templates

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.store.State().Entities.EmailTemplates)
}

func (h *Handler) UpsertTemplate(w http.ResponseWriter, r *http.Request) {
	var t store.EmailTemplate
	if !h.decodeBody(w, r, &t) {
		return
	}
	id, ok := h.resolveID(w, r, t.ID)
	if !ok {
		return
	}
	t.ID = id
	h.store.UpsertTemplate(t)
	h.respondStored(w, id, func(e store.Entities) (any, bool) {
		for _, x := range e.EmailTemplates {
			if x.ID == id {
				return x, true
			}
		}
		return nil, false
	})
}

func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteTemplate(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Announcements

func (h *Handler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.store.State().Entities.Announcements)
}

func (h *Handler) UpsertAnnouncement(w http.ResponseWriter, r *http.Request) {
	var a store.Announcement
	if !h.decodeBody(w, r, &a) {
		return
	}
	id, ok := h.resolveID(w, r, a.ID)
	if !ok {
		return
	}
	a.ID = id
	h.store.UpsertAnnouncement(a)
	h.respondStored(w, id, func(e store.Entities) (any, bool) {
		for _, x := range e.Announcements {
			if x.ID == id {
				return x, true
			}
		}
		return nil, false
	})
}

func (h *Handler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	h.store.DeleteAnnouncement(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// respondStored answers with the record as the store now holds it. Under
// read-only mode an upsert is a silent no-op, so the record may be absent (or
// an older version); the response reflects the committed document either way.
func (h *Handler) respondStored(w http.ResponseWriter, id string, find func(store.Entities) (any, bool)) {
	if stored, ok := find(h.store.State().Entities); ok {
		h.respondJSON(w, http.StatusOK, stored)
		return
	}
	h.respondJSON(w, http.StatusOK, nil)
}
