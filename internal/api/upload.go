package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gitea.jw6.us/james/elternrat/internal/backend"
	httperrors "gitea.jw6.us/james/elternrat/internal/http/errors"
	"gitea.jw6.us/james/elternrat/internal/store"
)

type uploadDocumentRequest struct {
	FileName string                 `json:"fileName"`
	MimeType string                 `json:"mimeType"`
	Base64   string                 `json:"base64"`
	Title    string                 `json:"titel,omitempty"`
	Category store.DocumentCategory `json:"kategorie,omitempty"`
	Date     string                 `json:"datum,omitempty"`
	Tags     []string               `json:"tags,omitempty"`
	Notes    string                 `json:"notizen,omitempty"`
}

// UploadDocument pushes a base64 file to the backend collaborator and records
// the returned file reference as a new document of the active school year.
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	var req uploadDocumentRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.FileName) == "" || req.Base64 == "" {
		httperrors.BadRequestError(w, r, nil, "fileName and base64 are required")
		return
	}

	state := h.store.State()
	settings := state.Settings.Backend

	decoded, err := base64.StdEncoding.DecodeString(req.Base64)
	if err != nil {
		httperrors.BadRequestError(w, r, err, "base64 content is invalid")
		return
	}
	if maxBytes := int64(settings.MaxUploadMB) * 1024 * 1024; maxBytes > 0 && int64(len(decoded)) > maxBytes {
		httperrors.TooLargeError(w, r, fmt.Sprintf("file exceeds the %d MB upload limit", settings.MaxUploadMB))
		return
	}

	result, err := h.backend.UploadBase64(r.Context(), settings, req.FileName, req.MimeType, req.Base64)
	if err != nil {
		if errors.Is(err, backend.ErrDisabled) || errors.Is(err, backend.ErrMissingURL) {
			httperrors.ConflictError(w, r, err)
			return
		}
		httperrors.BadGatewayError(w, r, err)
		return
	}

	title := req.Title
	if title == "" {
		title = req.FileName
	}
	category := req.Category
	if category == "" {
		category = store.CategoryAllgemein
	}
	doc := store.DocumentItem{
		ID:         h.newID(),
		SchoolYear: state.Settings.ActiveSchoolYear,
		Title:      title,
		Category:   category,
		Date:       req.Date,
		Tags:       req.Tags,
		Notes:      req.Notes,
		Storage:    store.StorageDrive,
		Drive: &store.DriveRef{
			FileID:      result.FileID,
			Name:        result.Name,
			MimeType:    result.MimeType,
			Size:        result.Size,
			WebViewLink: result.WebViewLink,
		},
	}
	h.store.UpsertDocument(doc)
	h.respondStored(w, doc.ID, func(e store.Entities) (any, bool) {
		for _, x := range e.Documents {
			if x.ID == doc.ID {
				return x, true
			}
		}
		return nil, false
	})
}

// PingBackend checks reachability of the upload/email collaborator.
func (h *Handler) PingBackend(w http.ResponseWriter, r *http.Request) {
	result, err := h.backend.Ping(r.Context(), h.store.State().Settings.Backend)
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
