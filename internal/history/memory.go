// internal/history/memory.go
package history

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory implementation of Store for testing.
type MemoryStore struct {
	records map[string]*Record
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

// Append stores a copy of rec.
func (m *MemoryStore) Append(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		return fmt.Errorf("record id is required")
	}
	if rec.Time.IsZero() {
		rec.Time = time.Now().UTC()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copy := *rec
	m.records[rec.ID] = &copy
	return nil
}

// Get retrieves a record by id or unique id prefix.
func (m *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if rec, ok := m.records[id]; ok {
		copy := *rec
		return &copy, nil
	}
	if len(id) < minPrefixLen {
		return nil, &NotFoundError{ID: id}
	}

	var matches []string
	for key := range m.records {
		if strings.HasPrefix(key, id) {
			matches = append(matches, key)
		}
	}
	switch len(matches) {
	case 0:
		return nil, &NotFoundError{ID: id}
	case 1:
		copy := *m.records[matches[0]]
		return &copy, nil
	default:
		sort.Strings(matches)
		return nil, &AmbiguousIDError{Prefix: id, Matches: matches}
	}
}

// List returns records newest first.
func (m *MemoryStore) List(ctx context.Context, opts ListOptions) ([]*Record, error) {
	m.mu.RLock()
	all := make([]*Record, 0, len(m.records))
	for _, rec := range m.records {
		copy := *rec
		all = append(all, &copy)
	}
	m.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].Time.Equal(all[j].Time) {
			return all[i].ID > all[j].ID
		}
		return all[i].Time.After(all[j].Time)
	})

	var out []*Record
	for _, rec := range all {
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
		if opts.match(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
