package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"gitea.jw6.us/james/elternrat/internal/store"
)

func enabled(url string) store.BackendSettings {
	return store.BackendSettings{Enabled: true, APIURL: url, APIKey: "secret"}
}

func TestCall_Preconditions(t *testing.T) {
	c := &Client{}
	tests := []struct {
		name     string
		settings store.BackendSettings
		want     error
	}{
		{"disabled", store.BackendSettings{Enabled: false, APIURL: "https://example.test"}, ErrDisabled},
		{"missing url", store.BackendSettings{Enabled: true, APIURL: " "}, ErrMissingURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Ping(context.Background(), tt.settings)
			if !errors.Is(err, tt.want) {
				t.Errorf("Ping() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["action"] != "ping" || body["apiKey"] != "secret" {
			t.Errorf("request body = %v, want action=ping with apiKey", body)
		}
		fmt.Fprint(w, `{"ok":true,"data":{"version":"1.4.0"}}`)
	}))
	defer srv.Close()

	c := &Client{HTTP: srv.Client()}
	got, err := c.Ping(context.Background(), enabled(srv.URL))
	if err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if got.Version != "1.4.0" {
		t.Errorf("Version = %q, want 1.4.0", got.Version)
	}
}

func TestCall_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"non-json body", "<html>oops</html>", "ungültige antwort (kein json)"},
		{"envelope error verbatim", `{"ok":false,"error":"drive quota exceeded"}`, "drive quota exceeded"},
		{"envelope without message", `{"ok":false}`, "backend fehler"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			c := &Client{HTTP: srv.Client()}
			_, err := c.Ping(context.Background(), enabled(srv.URL))
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("Ping() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestUploadBase64_PassesDriveSettings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["action"] != "uploadBase64" {
			t.Errorf("action = %v, want uploadBase64", body["action"])
		}
		if body["fileName"] != "protokoll.pdf" || body["mimeType"] != "application/pdf" {
			t.Errorf("file fields = %v/%v", body["fileName"], body["mimeType"])
		}
		if body["folderId"] != "root-folder" || body["autoShareLink"] != true {
			t.Errorf("drive fields = %v/%v, want settings passed through", body["folderId"], body["autoShareLink"])
		}
		fmt.Fprint(w, `{"ok":true,"data":{"fileId":"f1","webViewLink":"https://drive.example/f1","name":"protokoll.pdf","size":1234}}`)
	}))
	defer srv.Close()

	settings := enabled(srv.URL)
	settings.DriveRootFolderID = "root-folder"
	settings.AutoShareLink = true

	c := &Client{HTTP: srv.Client()}
	got, err := c.UploadBase64(context.Background(), settings, "protokoll.pdf", "application/pdf", "aGFsbG8=")
	if err != nil {
		t.Fatalf("UploadBase64() error = %v", err)
	}
	if got.FileID != "f1" || got.WebViewLink != "https://drive.example/f1" || got.Size != 1234 {
		t.Errorf("UploadBase64() = %+v", got)
	}
}

func TestSendEmail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if body["action"] != "sendEmail" || body["subject"] != "Einladung" {
			t.Errorf("request body = %v", body)
		}
		if body["sendMode"] != "bcc" {
			t.Errorf("sendMode = %v, want bcc", body["sendMode"])
		}
		fmt.Fprint(w, `{"ok":true,"data":{"sent":3}}`)
	}))
	defer srv.Close()

	c := &Client{HTTP: srv.Client()}
	got, err := c.SendEmail(context.Background(), enabled(srv.URL), SendEmailRequest{
		To:       []string{"elternrat@example.test"},
		BCC:      []string{"a@example.test", "b@example.test", "c@example.test"},
		Subject:  "Einladung",
		Body:     "Hallo",
		SendMode: SendBCC,
	})
	if err != nil {
		t.Fatalf("SendEmail() error = %v", err)
	}
	if got.Sent != 3 {
		t.Errorf("Sent = %d, want 3", got.Sent)
	}
}
