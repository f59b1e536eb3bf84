// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"context"
	"fmt"
	"pokerclock/internal/model"
	"pokerclock/internal/repository"
	"sort"
	"sync"
	"time"
)

// StructureRepo is an in-memory repository.StructureRepo
type StructureRepo struct {
	mu   sync.Mutex
	byID map[string]model.BlindStructure
	next int
}

func NewStructureRepo() *StructureRepo {
	return &StructureRepo{byID: make(map[string]model.BlindStructure)}
}

func (r *StructureRepo) Create(ctx context.Context, s *model.BlindStructure) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	now := time.Now()
	s.ID = fmt.Sprintf("s%d", r.next)
	s.CreatedAt = now
	s.UpdatedAt = now
	r.byID[s.ID] = clone(*s)
	return s.ID, nil
}

func (r *StructureRepo) GetByID(ctx context.Context, id string) (*model.BlindStructure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	s = clone(s)
	return &s, nil
}

func (r *StructureRepo) ListByHost(ctx context.Context, hostID string) ([]*model.BlindStructure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.BlindStructure{}
	for _, s := range r.byID {
		if s.HostID == hostID {
			s = clone(s)
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *StructureRepo) Update(ctx context.Context, s *model.BlindStructure) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[s.ID]; !ok {
		return repository.ErrNotFound
	}
	s.UpdatedAt = time.Now()
	r.byID[s.ID] = clone(*s)
	return nil
}

func (r *StructureRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func clone(s model.BlindStructure) model.BlindStructure {
	s.Levels = append([]model.BlindLevel(nil), s.Levels...)
	return s
}

// EventRepo is an in-memory repository.EventRepo
type EventRepo struct {
	mu     sync.Mutex
	events []model.TableEvent
	next   int
}

func NewEventRepo() *EventRepo {
	return &EventRepo{}
}

func (r *EventRepo) Record(ctx context.Context, ev *model.TableEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	if ev.ID == "" {
		ev.ID = fmt.Sprintf("e%d", r.next)
	}
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	r.events = append(r.events, *ev)
	return nil
}

func (r *EventRepo) ListByTable(ctx context.Context, code string, limit int) ([]*model.TableEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.TableEvent{}
	for i := len(r.events) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		if r.events[i].TableCode == code {
			ev := r.events[i]
			out = append(out, &ev)
		}
	}
	return out, nil
}

// Types returns the event types recorded for a table, oldest first
func (r *EventRepo) Types(code string) []model.TableEventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.TableEventType
	for _, ev := range r.events {
		if ev.TableCode == code {
			out = append(out, ev.Type)
		}
	}
	return out
}

var (
	_ repository.StructureRepo = (*StructureRepo)(nil)
	_ repository.EventRepo     = (*EventRepo)(nil)
)
