package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/employeeboard/internal/server/repositories/memory"
)

// MemoryRepositoryManager serves repositories from a process-local store.
// Transactions are serialized; a failed fn is not rolled back.
type MemoryRepositoryManager struct {
	txMu  sync.Mutex
	store *memory.Store
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{store: memory.NewStore()}
}

func (m *MemoryRepositoryManager) Repositories() Repositories {
	return Repositories{
		Employees: m.store.Employees(),
		Posts:     m.store.Posts(),
		Comments:  m.store.Comments(),
	}
}

func (m *MemoryRepositoryManager) WithinTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, m.Repositories())
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
