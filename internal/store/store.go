package store

import (
	"log"
	"sync"
	"time"
)

// record is implemented by every collection entity. stamped returns a copy of
// the record with its lifecycle timestamps set; everything else on the input
// is trusted as given.
type record[T any] interface {
	key() string
	created() time.Time
	stamped(createdAt, updatedAt time.Time) T
}

func (m Member) key() string         { return m.ID }
func (m Member) created() time.Time  { return m.CreatedAt }
func (m Member) stamped(c, u time.Time) Member {
	m.CreatedAt, m.UpdatedAt = c, u
	return m
}

func (m Meeting) key() string        { return m.ID }
func (m Meeting) created() time.Time { return m.CreatedAt }
func (m Meeting) stamped(c, u time.Time) Meeting {
	m.CreatedAt, m.UpdatedAt = c, u
	return m
}

func (p Proposal) key() string        { return p.ID }
func (p Proposal) created() time.Time { return p.CreatedAt }
func (p Proposal) stamped(c, u time.Time) Proposal {
	p.CreatedAt, p.UpdatedAt = c, u
	return p
}

func (e EventItem) key() string        { return e.ID }
func (e EventItem) created() time.Time { return e.CreatedAt }
func (e EventItem) stamped(c, u time.Time) EventItem {
	e.CreatedAt, e.UpdatedAt = c, u
	return e
}

func (d DocumentItem) key() string        { return d.ID }
func (d DocumentItem) created() time.Time { return d.CreatedAt }
func (d DocumentItem) stamped(c, u time.Time) DocumentItem {
	d.CreatedAt, d.UpdatedAt = c, u
	return d
}

func (t EmailTemplate) key() string        { return t.ID }
func (t EmailTemplate) created() time.Time { return t.CreatedAt }
func (t EmailTemplate) stamped(c, u time.Time) EmailTemplate {
	t.CreatedAt, t.UpdatedAt = c, u
	return t
}

func (a Announcement) key() string        { return a.ID }
func (a Announcement) created() time.Time { return a.CreatedAt }
func (a Announcement) stamped(c, u time.Time) Announcement {
	a.CreatedAt, a.UpdatedAt = c, u
	return a
}

// upsertByID inserts or replaces item by id without mutating list. A new id
// is prepended (new records surface first) with createdAt = updatedAt = now;
// an existing id is replaced in place, keeping the original createdAt.
// Client-supplied timestamps never survive.
func upsertByID[T record[T]](list []T, item T, now time.Time) []T {
	for i, existing := range list {
		if existing.key() == item.key() {
			next := make([]T, len(list))
			copy(next, list)
			next[i] = item.stamped(existing.created(), now)
			return next
		}
	}
	next := make([]T, 0, len(list)+1)
	next = append(next, item.stamped(now, now))
	return append(next, list...)
}

// deleteByID removes the record with the given id. A missing id is a no-op
// returning the list unchanged.
func deleteByID[T record[T]](list []T, id string) []T {
	for i, existing := range list {
		if existing.key() == id {
			next := make([]T, 0, len(list)-1)
			next = append(next, list[:i]...)
			return append(next, list[i+1:]...)
		}
	}
	return list
}

// SettingsPatch is a partial settings update. Nil fields are left untouched;
// the two integration records are replaced whole when present.
type SettingsPatch struct {
	SchoolName       *string              `json:"schoolName,omitempty"`
	ActiveSchoolYear *string              `json:"activeSchoolYear,omitempty"`
	ReadOnly         *bool                `json:"readOnly,omitempty"`
	Timezone         *string              `json:"timezone,omitempty"`
	Schulhelfer      *SchulhelferSettings `json:"schulhelfer,omitempty"`
	Backend          *BackendSettings     `json:"backend,omitempty"`
}

// Store holds the one live document for the process. It is created once at
// startup and passed by handle to every consumer; there is no ambient global.
// All transitions are pure functions of (previous document, input) applied
// under a mutex, then mirrored to the gateway, so no reader ever observes a
// partially applied mutation.
//
// Returned documents follow copy-on-write discipline: transitions build new
// slices instead of mutating shared ones, so callers may read what State()
// returns without further locking but must not modify it.
type Store struct {
	mu    sync.Mutex
	state PersistedState
	gw    Gateway
	now   func() time.Time
}

// Option configures a Store at open time.
type Option func(*Store)

// WithClock overrides the timestamp source. Test hook.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open initializes the store from the gateway's current document. There is no
// teardown: every mutation is durable before the action returns.
func Open(gw Gateway, opts ...Option) *Store {
	s := &Store{gw: gw, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.state = gw.Load()
	return s
}

// State returns the latest committed document.
func (s *Store) State() PersistedState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Export renders the current document as pretty-printed JSON.
func (s *Store) Export() string {
	return ExportJSON(s.State())
}

// mutate applies a transition and persists the result. With gated set, a
// read-only document makes the whole call a silent no-op: no transition, no
// save, no error. Save failures are logged and swallowed; steady-state
// operations never fail observably.
func (s *Store) mutate(gated bool, fn func(PersistedState) PersistedState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gated && s.state.Settings.ReadOnly {
		return
	}
	s.state = fn(s.state)
	s.persistLocked("save")
}

func (s *Store) persistLocked(op string) {
	start := time.Now()
	err := s.gw.Save(s.state)
	observePersist(op, start)
	if err != nil {
		log.Printf("[ERROR] persist state: %v", err)
	}
}

// SetSettings shallow-merges a partial settings object. Settings do not go
// through the read-only gate: toggling read-only itself must always work.
func (s *Store) SetSettings(patch SettingsPatch) {
	s.mutate(false, func(doc PersistedState) PersistedState {
		st := doc.Settings
		if patch.SchoolName != nil {
			st.SchoolName = *patch.SchoolName
		}
		if patch.ActiveSchoolYear != nil {
			st.ActiveSchoolYear = *patch.ActiveSchoolYear
		}
		if patch.ReadOnly != nil {
			st.ReadOnly = *patch.ReadOnly
		}
		if patch.Timezone != nil {
			st.Timezone = *patch.Timezone
		}
		if patch.Schulhelfer != nil {
			st.Schulhelfer = *patch.Schulhelfer
		}
		if patch.Backend != nil {
			st.Backend = *patch.Backend
		}
		doc.Settings = st
		return doc
	})
}

// ResetAll replaces the whole document with a fresh default state. This is an
// administrative escape hatch and bypasses the read-only gate.
func (s *Store) ResetAll() {
	s.mutate(false, func(PersistedState) PersistedState {
		return DefaultState(s.now())
	})
}

// Import replaces the whole document with a validated backup. On a
// *FormatError the held state is untouched. Bypasses the read-only gate.
func (s *Store) Import(raw string) error {
	parsed, err := ImportJSON(raw)
	if err != nil {
		return err
	}
	s.mutate(false, func(PersistedState) PersistedState {
		return parsed
	})
	return nil
}

func (s *Store) UpsertMember(m Member) {
	s.mutate(true, func(doc PersistedState) PersistedState {
		doc.Entities.Members = upsertByID(doc.Entities.Members, m, s.now())
		return doc
	})
}

func (s *Store) DeleteMember(id string) {
	s.mutate(true, func(doc PersistedState) PersistedState {
		doc.Entities.Members = deleteByID(doc.Entities.Members, id)
		return doc
	})
}

func (s *Store) UpsertMeeting(m Meeting) {
	s.mutate(true, func(doc PersistedState) PersistedState {
		doc.Entities.Meetings = upsertByID(doc.Entities.Meetings, m, s.now())
		return doc
	})
}

func (s *Store) DeleteMeeting(id string) {
	s.mutate(true, func(doc PersistedState) PersistedState {
		doc.Entities.Meetings = deleteByID(doc.Entities.Meetings, id)
		return doc
	})
}

func (s *Store) UpsertProposal(p Proposal) {
	s.mutate(true, func(doc PersistedState) PersistedState {
		doc.Entities.Proposals = upsertByID(doc.Entities.Proposals, p, s.now())
		return doc
	})
}

func (s *Store) DeleteProposal(id string) {
	s.mutate(true, func(doc PersistedState) PersistedState {
		doc.Entities.Proposals = deleteByID(doc.Entities.Proposals, id)
		return doc
	})
}

func (s *Store) UpsertEvent(e EventItem) {
	s.mutate(true, func(doc PersistedState) PersistedState {
		doc.Entities.Events = upsertByID(doc.Entities.Events, e, s.now())
		return doc
	})
}

func (s *Store) DeleteEvent(id string) {
	s.mutate(true, func(doc PersistedState) PersistedState {
		doc.Entities.Events = deleteByID(doc.Entities.Events, id)
		return doc
	})
}

func (s *Store) UpsertDocument(d DocumentItem) {
	s.mutate(true, func(doc PersistedState) PersistedState {
		doc.Entities.Documents = upsertByID(doc.Entities.Documents, d, s.now())
		return doc
	})
}

func (s *Store) DeleteDocument(id string) {
	s.mutate(true, func(doc PersistedState) PersistedState {
		doc.Entities.Documents = deleteByID(doc.Entities.Documents, id)
		return doc
	})
}

func (s *Store) UpsertTemplate(t EmailTemplate) {
	s.mutate(true, func(doc PersistedState) PersistedState {
		doc.Entities.EmailTemplates = upsertByID(doc.Entities.EmailTemplates, t, s.now())
		return doc
	})
}

func (s *Store) DeleteTemplate(id string) {
	s.mutate(true, func(doc PersistedState) PersistedState {
		doc.Entities.EmailTemplates = deleteByID(doc.Entities.EmailTemplates, id)
		return doc
	})
}

func (s *Store) UpsertAnnouncement(a Announcement) {
	s.mutate(true, func(doc PersistedState) PersistedState {
		doc.Entities.Announcements = upsertByID(doc.Entities.Announcements, a, s.now())
		return doc
	})
}

func (s *Store) DeleteAnnouncement(id string) {
	s.mutate(true, func(doc PersistedState) PersistedState {
		doc.Entities.Announcements = deleteByID(doc.Entities.Announcements, id)
		return doc
	})
}
