package store

import (
	"strings"
	"time"
)

// Reconcile repairs a previously persisted document against current defaults.
// Older or hand-edited documents may lack fields introduced later; every
// missing value is filled from DefaultState while user-entered values are
// kept. The function is total: it never fails and the result satisfies every
// document invariant. Reconcile is idempotent.
func Reconcile(loaded PersistedState, now time.Time) PersistedState {
	def := DefaultState(now)
	return PersistedState{
		SchemaVersion: SchemaVersion,
		Settings:      mergeSettings(loaded.Settings, def.Settings),
		Entities:      mergeEntities(loaded.Entities),
	}
}

func mergeSettings(loaded, def Settings) Settings {
	out := loaded
	if out.SchoolName == "" {
		out.SchoolName = def.SchoolName
	}
	if out.ActiveSchoolYear == "" {
		out.ActiveSchoolYear = def.ActiveSchoolYear
	}
	if out.Timezone == "" {
		out.Timezone = def.Timezone
	}
	out.Schulhelfer = mergeSchulhelferSettings(loaded.Schulhelfer, def.Schulhelfer)
	out.Backend = mergeBackendSettings(loaded.Backend, def.Backend)
	return out
}

func mergeSchulhelferSettings(loaded, def SchulhelferSettings) SchulhelferSettings {
	out := loaded
	// A blank URL is a remnant of the old empty-string default, never a real
	// configuration; the compiled-in default wins.
	if strings.TrimSpace(out.APIURL) == "" {
		out.APIURL = def.APIURL
	}
	return out
}

func mergeBackendSettings(loaded, def BackendSettings) BackendSettings {
	out := loaded
	if out.MaxUploadMB <= 0 {
		out.MaxUploadMB = def.MaxUploadMB
	}
	return out
}

// mergeEntities fills absent collections with empty sequences. Present
// collections are taken as-is; there is no per-record repair.
func mergeEntities(loaded Entities) Entities {
	out := loaded
	if out.Members == nil {
		out.Members = []Member{}
	}
	if out.Meetings == nil {
		out.Meetings = []Meeting{}
	}
	if out.Proposals == nil {
		out.Proposals = []Proposal{}
	}
	if out.Events == nil {
		out.Events = []EventItem{}
	}
	if out.Documents == nil {
		out.Documents = []DocumentItem{}
	}
	if out.EmailTemplates == nil {
		out.EmailTemplates = []EmailTemplate{}
	}
	if out.Announcements == nil {
		out.Announcements = []Announcement{}
	}
	return out
}
