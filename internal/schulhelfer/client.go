// Package schulhelfer talks to the external events source: a simple JSON
// endpoint that lists school events. The consumer contract: disabled
// integration and missing URL fail fast before any network call, a non-JSON
// body is a hard failure, and an {ok:false} envelope propagates its error
// message verbatim.
package schulhelfer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gitea.jw6.us/james/elternrat/internal/store"
)

var (
	// ErrDisabled means the integration is switched off in settings.
	ErrDisabled = errors.New("schulhelfer ist deaktiviert")
	// ErrMissingURL means no endpoint URL is configured.
	ErrMissingURL = errors.New("schulhelfer-url fehlt")
)

// Event is one remote calendar record as the endpoint returns it.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
}

type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// Client issues read requests against the events endpoint. Timeouts and
// cancellation are the caller's business via ctx and the injected http.Client.
type Client struct {
	HTTP *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

// GetEvents lists all remote events. The endpoint answers either with a bare
// array or with an {ok,data}/{ok,error} envelope; both are accepted.
func (c *Client) GetEvents(ctx context.Context, settings store.SchulhelferSettings) ([]Event, error) {
	if !settings.Enabled {
		return nil, ErrDisabled
	}
	if strings.TrimSpace(settings.APIURL) == "" {
		return nil, ErrMissingURL
	}

	u, err := url.Parse(settings.APIURL)
	if err != nil {
		return nil, fmt.Errorf("schulhelfer-url ungültig: %w", err)
	}
	q := u.Query()
	q.Set("action", "getEvents")
	if settings.APIKey != "" {
		q.Set("apiKey", settings.APIKey)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("schulhelfer nicht erreichbar: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("antwort unlesbar: %w", err)
	}
	return decodeEvents(body)
}

func decodeEvents(body []byte) ([]Event, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var events []Event
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, errors.New("ungültige antwort (kein json)")
		}
		return events, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, errors.New("ungültige antwort (kein json)")
	}
	if !env.OK {
		if env.Error != "" {
			return nil, errors.New(env.Error)
		}
		return nil, errors.New("schulhelfer fehler")
	}
	var events []Event
	if err := json.Unmarshal(env.Data, &events); err != nil {
		return nil, errors.New("unbekanntes format")
	}
	return events, nil
}

// MapEvents turns remote records into synced EventItems for one school year.
// The remote id becomes the natural key: a remote record matching an existing
// synced event keeps that event's local id and createdAt, so repeated syncs
// are idempotent. New records get fresh ids via newID.
func MapEvents(remote []Event, existing []store.EventItem, schoolYear string, newID func() string) []store.EventItem {
	byExternal := make(map[string]store.EventItem, len(existing))
	for _, e := range existing {
		if e.Source == store.SourceSchulhelfer && e.ExternalID != "" {
			byExternal[e.ExternalID] = e
		}
	}

	mapped := make([]store.EventItem, 0, len(remote))
	for _, r := range remote {
		item := store.EventItem{
			ID:          newID(),
			SchoolYear:  schoolYear,
			Title:       r.Title,
			Description: r.Description,
			Start:       r.Start,
			End:         r.End,
			Location:    r.Location,
			Source:      store.SourceSchulhelfer,
			ExternalID:  r.ID,
		}
		if prev, ok := byExternal[r.ID]; ok {
			item.ID = prev.ID
			item.CreatedAt = prev.CreatedAt
		}
		mapped = append(mapped, item)
	}
	return mapped
}
