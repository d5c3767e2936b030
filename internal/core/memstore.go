package core

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/minoru856-crypto/ai-shigeki/internal/roster"
)

// MemStore is an in-process RosterStore. The server falls back to it when
// no database is configured; nothing survives a restart.
type MemStore struct {
	mu        sync.RWMutex
	employees []roster.Employee
	imports   []ImportRecord // oldest first
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) ReplaceRoster(ctx context.Context, rec ImportRecord, employees []roster.Employee) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees = slices.Clone(employees)
	m.imports = append(m.imports, rec)
	return nil
}

func (m *MemStore) ListEmployees(ctx context.Context) ([]roster.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.employees), nil
}

func (m *MemStore) ListImports(ctx context.Context, limit int) ([]ImportRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]ImportRecord, 0, min(limit, len(m.imports)))
	for i := len(m.imports) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.imports[i])
	}
	return out, nil
}

func (m *MemStore) GetImport(ctx context.Context, id uuid.UUID) (ImportRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, rec := range m.imports {
		if rec.ID == id {
			return rec, nil
		}
	}
	return ImportRecord{}, fmt.Errorf("%w: %s", ErrImportNotFound, id)
}

func (m *MemStore) ClearEmployees(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := int64(len(m.employees))
	m.employees = nil
	return n, nil
}
