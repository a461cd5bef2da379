// Package store provides CalculationStore implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/interest-engine/interest"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	records map[string]interest.CalculationRecord
	order   []string // insertion order
}

var _ interest.CalculationStore = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{records: make(map[string]interest.CalculationRecord)}
}

// Save adds a record. Append-only.
func (m *Memory) Save(_ context.Context, rec interest.CalculationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[rec.ID]; ok {
		return interest.ErrDuplicateRecord
	}
	m.records[rec.ID] = rec
	m.order = append(m.order, rec.ID)
	return nil
}

func (m *Memory) Get(_ context.Context, id string) (interest.CalculationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return interest.CalculationRecord{}, interest.ErrRecordNotFound
	}
	return rec, nil
}

// List returns records newest first. Records created in the same instant
// keep reverse insertion order.
func (m *Memory) List(_ context.Context, filter interest.RecordFilter) ([]interest.CalculationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]interest.CalculationRecord, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		rec := m.records[m.order[i]]
		if filter.Kind != "" && rec.Kind != filter.Kind {
			continue
		}
		rec.Events = nil
		result = append(result, rec)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}
