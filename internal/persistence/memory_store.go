package persistence

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/mkarvo/flowchain/pkg/api"
)

// MemoryStore is a simple, goroutine-safe implementation of ReportStore
// and api.StateStore backed by maps. It is non-durable and intended for
// tests and single-process use.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]*api.RunReport
	order   []string // report insertion order, for stable listings
	states  map[string]api.State
}

// NewMemoryStore creates a new MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		reports: make(map[string]*api.RunReport),
		states:  make(map[string]api.State),
	}
}

// Ensure MemoryStore implements the interfaces.
var _ ReportStore = (*MemoryStore)(nil)

var _ api.StateStore = (*MemoryStore)(nil)

func (s *MemoryStore) SaveReport(ctx context.Context, rep *api.RunReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reports[rep.ID]; !exists {
		s.order = append(s.order, rep.ID)
	}
	cp := *rep
	cp.State = rep.State.Clone()
	s.reports[rep.ID] = &cp
	return nil
}

func (s *MemoryStore) GetReport(ctx context.Context, id string) (*api.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rep, ok := s.reports[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", api.ErrReportNotFound, id)
	}
	cp := *rep
	cp.State = rep.State.Clone()
	return &cp, nil
}

func (s *MemoryStore) ListReports(ctx context.Context, opts api.ReportListOptions) ([]*api.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*api.RunReport, 0, len(s.order))
	for _, id := range s.order {
		rep := s.reports[id]
		if opts.FlowName != "" && rep.Flow != opts.FlowName {
			continue
		}
		if opts.Status != "" && rep.Status != opts.Status {
			continue
		}
		cp := *rep
		cp.State = rep.State.Clone()
		out = append(out, &cp)
	}
	return out, nil
}

func (s *MemoryStore) SaveState(ctx context.Context, name string, state api.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[name] = state.Clone()
	return nil
}

func (s *MemoryStore) LoadState(ctx context.Context, name string) (api.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.states[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrStateNotFound, name)
	}
	return state.Clone(), nil
}

func (s *MemoryStore) ListStates(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.states))
	for name := range s.states {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *MemoryStore) DeleteState(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, name)
	return nil
}
