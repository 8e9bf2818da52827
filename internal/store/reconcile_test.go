package store

import (
	"reflect"
	"testing"
	"time"
)

func TestReconcile_FillsMissingValues(t *testing.T) {
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

	got := Reconcile(PersistedState{SchemaVersion: SchemaVersion}, now)

	if got.Settings.SchoolName == "" || got.Settings.Timezone == "" {
		t.Error("empty settings must be filled from defaults")
	}
	if got.Settings.ActiveSchoolYear != SchoolYearAt(now) {
		t.Errorf("ActiveSchoolYear = %q, want %q", got.Settings.ActiveSchoolYear, SchoolYearAt(now))
	}
	if got.Settings.Backend.MaxUploadMB <= 0 {
		t.Errorf("MaxUploadMB = %d, want positive default", got.Settings.Backend.MaxUploadMB)
	}
	if got.Entities.Members == nil || got.Entities.Events == nil || got.Entities.EmailTemplates == nil {
		t.Error("nil collections must become empty sequences")
	}
}

func TestReconcile_KeepsUserValues(t *testing.T) {
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	loaded := PersistedState{
		SchemaVersion: SchemaVersion,
		Settings: Settings{
			SchoolName:       "Schule Muster",
			ActiveSchoolYear: "2023/24",
			ReadOnly:         true,
			Timezone:         "Europe/Berlin",
			Schulhelfer:      SchulhelferSettings{Enabled: true, APIURL: "https://example.test/api", APIKey: "k"},
			Backend:          BackendSettings{MaxUploadMB: 25},
		},
		Entities: Entities{Members: []Member{{ID: "m1", Name: "Anna"}}},
	}

	got := Reconcile(loaded, now)

	if got.Settings.SchoolName != "Schule Muster" || got.Settings.ActiveSchoolYear != "2023/24" {
		t.Error("user-entered settings must survive reconcile")
	}
	if !got.Settings.ReadOnly {
		t.Error("read-only flag must survive reconcile")
	}
	if got.Settings.Schulhelfer.APIURL != "https://example.test/api" {
		t.Errorf("APIURL = %q, want configured value kept", got.Settings.Schulhelfer.APIURL)
	}
	if got.Settings.Backend.MaxUploadMB != 25 {
		t.Errorf("MaxUploadMB = %d, want 25", got.Settings.Backend.MaxUploadMB)
	}
	if len(got.Entities.Members) != 1 || got.Entities.Members[0].Name != "Anna" {
		t.Error("present collections must be taken as-is")
	}
}

func TestReconcile_BlankSchulhelferURLGetsDefault(t *testing.T) {
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"whitespace only", "   \t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loaded := PersistedState{SchemaVersion: SchemaVersion}
			loaded.Settings.Schulhelfer = SchulhelferSettings{Enabled: true, APIURL: tt.url, APIKey: "k"}

			got := Reconcile(loaded, now)
			if got.Settings.Schulhelfer.APIURL != DefaultSchulhelferAPIURL {
				t.Errorf("APIURL = %q, want %q", got.Settings.Schulhelfer.APIURL, DefaultSchulhelferAPIURL)
			}
			if !got.Settings.Schulhelfer.Enabled || got.Settings.Schulhelfer.APIKey != "k" {
				t.Error("only the URL may change; the rest of the record stays")
			}
		})
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	inputs := []PersistedState{
		{SchemaVersion: SchemaVersion},
		DefaultState(now),
		{
			SchemaVersion: SchemaVersion,
			Settings:      Settings{SchoolName: "X", Schulhelfer: SchulhelferSettings{APIURL: "https://example.test"}},
		},
	}
	for _, in := range inputs {
		once := Reconcile(in, now)
		twice := Reconcile(once, now)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Reconcile is not idempotent for %+v", in)
		}
	}
}
