package store

import (
	"encoding/json"
	"fmt"
	"time"
)

// Gateway is the single point of contact with durable storage. The whole
// document lives under one fixed key; there is no partial read or write.
//
// Load is infallible by design: a missing, unreadable or version-mismatched
// record yields the default state, trading data loss for availability.
// Save overwrites unconditionally. Concurrent writers against the same key
// (two processes on one data file) are last-write-wins; export/import is the
// only cross-device merge path.
type Gateway interface {
	Load() PersistedState
	Save(state PersistedState) error
}

// ExportJSON renders the full document as pretty-printed JSON for
// user-initiated backups.
func ExportJSON(state PersistedState) string {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		// The document is plain data; this cannot happen for a valid state.
		return "{}"
	}
	return string(raw)
}

// ImportJSON parses a backup document. Unlike Load it is strict: a parse
// failure or schema-version mismatch is a *FormatError, and the result is
// NOT reconciled — a restored backup must come back exactly as exported.
func ImportJSON(raw string) (PersistedState, error) {
	return decodeState([]byte(raw))
}

func decodeState(raw []byte) (PersistedState, error) {
	var state PersistedState
	if err := json.Unmarshal(raw, &state); err != nil {
		return PersistedState{}, &FormatError{Reason: "not valid JSON", Err: err}
	}
	if state.SchemaVersion != SchemaVersion {
		return PersistedState{}, &FormatError{
			Reason: fmt.Sprintf("unsupported schema version %d (want %d)", state.SchemaVersion, SchemaVersion),
		}
	}
	return state, nil
}

// loadRaw implements the lenient load path shared by all gateways: decode,
// gate on schema version, reconcile; fall back to defaults on any failure.
func loadRaw(raw []byte, now time.Time) PersistedState {
	state, err := decodeState(raw)
	if err != nil {
		return DefaultState(now)
	}
	return Reconcile(state, now)
}
