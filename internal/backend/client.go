// Package backend talks to the upload/email collaborator: one POST-style RPC
// with an action discriminator and a shared-secret key, answering with an
// {ok,data}/{ok,error} envelope.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"gitea.jw6.us/james/elternrat/internal/store"
)

var (
	// ErrDisabled means the integration is switched off in settings.
	ErrDisabled = errors.New("backend ist deaktiviert")
	// ErrMissingURL means no endpoint URL is configured.
	ErrMissingURL = errors.New("backend-url fehlt")
)

// UploadResult is the stored-file reference the backend returns for an upload.
type UploadResult struct {
	FileID      string `json:"fileId"`
	WebViewLink string `json:"webViewLink"`
	Name        string `json:"name"`
	MimeType    string `json:"mimeType,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

// PingResult reports the backend's version.
type PingResult struct {
	Version string `json:"version"`
}

// SendMode selects how recipients appear on the outgoing mail.
type SendMode string

const (
	// SendSingle addresses every recipient directly.
	SendSingle SendMode = "single"
	// SendBCC shows one visible To address and hides the rest in BCC.
	SendBCC SendMode = "bcc"
)

// SendEmailRequest describes one outgoing mail.
type SendEmailRequest struct {
	To       []string `json:"to"`
	CC       []string `json:"cc,omitempty"`
	BCC      []string `json:"bcc,omitempty"`
	Subject  string   `json:"subject"`
	Body     string   `json:"body"`
	HTMLBody string   `json:"htmlBody,omitempty"`
	SendMode SendMode `json:"sendMode,omitempty"`
}

// SendEmailResult reports how many mails went out.
type SendEmailResult struct {
	MessageID string `json:"messageId,omitempty"`
	Sent      int    `json:"sent"`
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// Client issues RPC calls against the backend endpoint.
type Client struct {
	HTTP *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// call posts one action. The apiKey travels in the body alongside the
// action-specific payload, mirroring the endpoint's dispatch convention.
func (c *Client) call(ctx context.Context, settings store.BackendSettings, action string, payload map[string]any, out any) error {
	if !settings.Enabled {
		return ErrDisabled
	}
	if strings.TrimSpace(settings.APIURL) == "" {
		return ErrMissingURL
	}

	body := map[string]any{
		"action": action,
		"apiKey": settings.APIKey,
	}
	for k, v := range payload {
		body[k] = v
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, settings.APIURL, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	res, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("backend nicht erreichbar: %w", err)
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("antwort unlesbar: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(resBody, &env); err != nil {
		return errors.New("ungültige antwort (kein json)")
	}
	if !env.OK {
		if env.Error != "" {
			return errors.New(env.Error)
		}
		return errors.New("backend fehler")
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("unerwartete antwort: %w", err)
		}
	}
	return nil
}

// Ping checks reachability and returns the backend version.
func (c *Client) Ping(ctx context.Context, settings store.BackendSettings) (PingResult, error) {
	var out PingResult
	err := c.call(ctx, settings, "ping", nil, &out)
	return out, err
}

// UploadBase64 stores a base64-encoded file and returns its reference.
func (c *Client) UploadBase64(ctx context.Context, settings store.BackendSettings, fileName, mimeType, base64Data string) (UploadResult, error) {
	var out UploadResult
	err := c.call(ctx, settings, "uploadBase64", map[string]any{
		"fileName":      fileName,
		"mimeType":      mimeType,
		"base64":        base64Data,
		"folderId":      settings.DriveRootFolderID,
		"autoShareLink": settings.AutoShareLink,
	}, &out)
	return out, err
}

// SendEmail dispatches one mail through the backend.
func (c *Client) SendEmail(ctx context.Context, settings store.BackendSettings, req SendEmailRequest) (SendEmailResult, error) {
	var out SendEmailResult
	err := c.call(ctx, settings, "sendEmail", map[string]any{
		"to":       req.To,
		"cc":       req.CC,
		"bcc":      req.BCC,
		"subject":  req.Subject,
		"body":     req.Body,
		"htmlBody": req.HTMLBody,
		"sendMode": req.SendMode,
	}, &out)
	return out, err
}
