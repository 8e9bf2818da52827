package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestFileGateway_MissingFileYieldsDefaults(t *testing.T) {
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	gw := &FileGateway{Path: filepath.Join(t.TempDir(), "elternrat.json"), Now: fixedClock(now)}

	if got := gw.Load(); !reflect.DeepEqual(got, DefaultState(now)) {
		t.Error("missing data file must yield the default state")
	}
}

func TestFileGateway_CorruptFileYieldsDefaults(t *testing.T) {
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	path := filepath.Join(t.TempDir(), "elternrat.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	gw := &FileGateway{Path: path, Now: fixedClock(now)}

	if got := gw.Load(); !reflect.DeepEqual(got, DefaultState(now)) {
		t.Error("corrupt data file must yield the default state")
	}
}

func TestFileGateway_SaveLoadRoundTrip(t *testing.T) {
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	gw := &FileGateway{Path: filepath.Join(t.TempDir(), "sub", "elternrat.json"), Now: fixedClock(now)}

	state := DefaultState(now)
	state.Entities.Announcements = []Announcement{{
		ID: "a1", Title: "Herbstfest", Text: "Samstag im Schulhaus", Date: "2025-10-04",
		CreatedAt: now, UpdatedAt: now,
	}}
	if err := gw.Save(state); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Load reconciles, and a reconciled default-based document is a fixpoint,
	// so the round trip must be exact.
	if got := gw.Load(); !reflect.DeepEqual(got, state) {
		t.Error("load after save must restore the document")
	}
}

func TestFileGateway_SaveIsAtomicOverwrite(t *testing.T) {
	now := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	dir := t.TempDir()
	gw := &FileGateway{Path: filepath.Join(dir, "elternrat.json"), Now: fixedClock(now)}

	first := DefaultState(now)
	second := first
	second.Settings.SchoolName = "Schule Muster"
	if err := gw.Save(first); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := gw.Save(second); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if got := gw.Load().Settings.SchoolName; got != "Schule Muster" {
		t.Errorf("SchoolName = %q, want last write", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d files in data dir, want only the data file (no temp leftovers)", len(entries))
	}
}
