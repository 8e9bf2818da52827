package store

import "time"

// MemoryGateway is an in-memory Gateway used by tests and by the pure-logic
// callers that want the store without durable storage. It records every save
// so tests can assert on the persistence side effect.
type MemoryGateway struct {
	Seed   *PersistedState
	Saves  []PersistedState
	Now    func() time.Time
	SaveFn func(PersistedState) error // optional failure injection
}

func (g *MemoryGateway) clock() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

func (g *MemoryGateway) Load() PersistedState {
	if g.Seed == nil {
		return DefaultState(g.clock())
	}
	return Reconcile(*g.Seed, g.clock())
}

func (g *MemoryGateway) Save(state PersistedState) error {
	g.Saves = append(g.Saves, state)
	if g.SaveFn != nil {
		return g.SaveFn(state)
	}
	return nil
}
