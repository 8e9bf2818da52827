package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"gitea.jw6.us/james/elternrat/internal/store"
)

func TestGetSettings(t *testing.T) {
	h, _ := newTestHandler(t, nil)
	router := testRouter(h)

	rec := doJSON(t, router, http.MethodGet, "/api/settings", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got store.Settings
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ActiveSchoolYear != store.SchoolYearAt(testNow) {
		t.Errorf("ActiveSchoolYear = %q, want current school year", got.ActiveSchoolYear)
	}
	if got.Schulhelfer.APIURL != store.DefaultSchulhelferAPIURL {
		t.Errorf("Schulhelfer.APIURL = %q, want compiled-in default", got.Schulhelfer.APIURL)
	}
}

func TestPatchSettings(t *testing.T) {
	h, st := newTestHandler(t, nil)
	router := testRouter(h)
	before := st.State().Settings

	rec := doJSON(t, router, http.MethodPatch, "/api/settings",
		`{"schoolName": "Schule Muster", "activeSchoolYear": "2024/25"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got store.Settings
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.SchoolName != "Schule Muster" || got.ActiveSchoolYear != "2024/25" {
		t.Errorf("settings = %+v, want patched values", got)
	}
	if got.Timezone != before.Timezone {
		t.Error("patch must leave unnamed fields untouched")
	}
}

func TestPatchSettings_InvalidBody(t *testing.T) {
	h, _ := newTestHandler(t, nil)
	router := testRouter(h)

	rec := doJSON(t, router, http.MethodPatch, "/api/settings", `{broken`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
