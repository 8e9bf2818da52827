package api

import (
	"errors"
	"net/http"
	"strings"

	"gitea.jw6.us/james/elternrat/internal/backend"
	httperrors "gitea.jw6.us/james/elternrat/internal/http/errors"
	"gitea.jw6.us/james/elternrat/internal/mailmerge"
)

// sendEmailRequest is the API shape for outgoing mail. Subject and body may
// come from a stored template (by id) or be given inline; {{var}} placeholders
// are filled from Vars either way. Recipients combine explicit addresses with
// member ids resolved against the member collection.
type sendEmailRequest struct {
	TemplateID string            `json:"templateId,omitempty"`
	Subject    string            `json:"subject,omitempty"`
	Body       string            `json:"body,omitempty"`
	Vars       map[string]string `json:"vars,omitempty"`
	To         []string          `json:"to,omitempty"`
	MemberIDs  []string          `json:"memberIds,omitempty"`
	SendMode   backend.SendMode  `json:"sendMode,omitempty"`
	VisibleTo  string            `json:"visibleTo,omitempty"`
}

// SendEmail renders and dispatches one mail through the backend collaborator.
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var req sendEmailRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	state := h.store.State()

	subject, body := req.Subject, req.Body
	if req.TemplateID != "" {
		found := false
		for _, t := range state.Entities.EmailTemplates {
			if t.ID == req.TemplateID {
				if subject == "" {
					subject = t.Subject
				}
				if body == "" {
					body = t.Body
				}
				found = true
				break
			}
		}
		if !found {
			httperrors.NotFoundError(w, r, "email template not found")
			return
		}
	}
	subject = mailmerge.Apply(subject, req.Vars)
	body = mailmerge.Apply(body, req.Vars)

	// Entries in "to" may themselves be comma/semicolon-separated lists, the
	// way users paste addresses.
	var recipients []string
	for _, raw := range req.To {
		recipients = append(recipients, mailmerge.SplitAddresses(raw)...)
	}
	for _, id := range req.MemberIDs {
		for _, m := range state.Entities.Members {
			if m.ID == id && m.Email != "" {
				recipients = append(recipients, m.Email)
			}
		}
	}
	recipients = mailmerge.Dedupe(recipients)

	switch {
	case strings.TrimSpace(subject) == "":
		httperrors.BadRequestError(w, r, nil, "subject is empty")
		return
	case strings.TrimSpace(body) == "":
		httperrors.BadRequestError(w, r, nil, "body is empty")
		return
	case len(recipients) == 0:
		httperrors.BadRequestError(w, r, nil, "no recipients")
		return
	case req.SendMode == backend.SendBCC && strings.TrimSpace(req.VisibleTo) == "":
		httperrors.BadRequestError(w, r, nil, "bcc mode needs a visible to address")
		return
	}

	sendReq := backend.SendEmailRequest{
		Subject:  subject,
		Body:     body,
		SendMode: req.SendMode,
	}
	if req.SendMode == backend.SendBCC {
		sendReq.To = []string{strings.TrimSpace(req.VisibleTo)}
		sendReq.BCC = recipients
	} else {
		sendReq.To = recipients
	}

	result, err := h.backend.SendEmail(r.Context(), state.Settings.Backend, sendReq)
	if err != nil {
		if errors.Is(err, backend.ErrDisabled) || errors.Is(err, backend.ErrMissingURL) {
			httperrors.ConflictError(w, r, err)
			return
		}
		httperrors.BadGatewayError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}
