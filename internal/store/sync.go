package store

// ReplaceSyncedEvents applies a full pull from the events collaborator as one
// atomic transition: every previously synced event of the given school year is
// dropped and the freshly mapped set takes its place. Local events are never
// touched. Goes through the read-only gate like any other entity mutation.
//
// Mapped records that carry a createdAt (re-synced external ids keep the
// original record's) retain it; records without one are stamped as new.
// updatedAt is always recomputed.
func (s *Store) ReplaceSyncedEvents(schoolYear string, mapped []EventItem) {
	s.mutate(true, func(doc PersistedState) PersistedState {
		now := s.now()
		next := make([]EventItem, 0, len(doc.Entities.Events)+len(mapped))
		for _, e := range mapped {
			e.Source = SourceSchulhelfer
			e.SchoolYear = schoolYear
			if e.CreatedAt.IsZero() {
				e.CreatedAt = now
			}
			e.UpdatedAt = now
			next = append(next, e)
		}
		for _, e := range doc.Entities.Events {
			if e.Source == SourceSchulhelfer && e.SchoolYear == schoolYear {
				continue
			}
			next = append(next, e)
		}
		doc.Entities.Events = next
		return doc
	})
}
