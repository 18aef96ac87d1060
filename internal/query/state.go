package query

import (
	"sync/atomic"

	"curadoria/internal"
)

// State is never mutated after NewState.
type State struct {
	records []internal.Record
	facets  Facets
	info    internal.LoadInfo
}

func NewState(records []internal.Record, info internal.LoadInfo) *State {
	owned := make([]internal.Record, len(records))
	copy(owned, records)
	return &State{records: owned, facets: BuildFacets(owned), info: info}
}

func EmptyState(info internal.LoadInfo) *State {
	return NewState(nil, info)
}

func (s *State) Len() int {
	return len(s.records)
}

func (s *State) Records() []internal.Record {
	out := make([]internal.Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *State) Info() internal.LoadInfo {
	return s.info
}

func (s *State) Facets() Facets {
	return s.facets
}

func (s *State) Query(q Query) Result {
	return Apply(s.records, q)
}

type Holder struct {
	current atomic.Pointer[State]
}

func NewHolder(initial *State) *Holder {
	h := &Holder{}
	if initial == nil {
		initial = EmptyState(internal.LoadInfo{})
	}
	h.current.Store(initial)
	return h
}

func (h *Holder) Load() *State {
	return h.current.Load()
}

func (h *Holder) Swap(next *State) *State {
	if next == nil {
		next = EmptyState(internal.LoadInfo{})
	}
	return h.current.Swap(next)
}
