package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/crmhub/crm/backend/go-services/internal/document"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no stored request matches the id.
var ErrNotFound = document.ErrNotFound

// ErrDuplicateID is returned when Create is given an ID that is already stored.
var ErrDuplicateID = errors.New("document id already exists")

// MemoryRepo keeps document requests in process memory. It backs unit tests and
// deployments without MongoDB.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*document.Request
	now   func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*document.Request), now: time.Now}
}

// Create stores a copy of req. A caller-supplied ID that is already taken is
// rejected rather than overwritten. req gets its ID and CreatedAt only on success.
func (m *MemoryRepo) Create(_ context.Context, req *document.Request) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := *req
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if _, ok := m.store[rec.ID]; ok {
		return "", fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
	}
	rec.CreatedAt = m.now().UTC()
	m.store[rec.ID] = &rec
	req.ID, req.CreatedAt = rec.ID, rec.CreatedAt
	return rec.ID, nil
}

func (m *MemoryRepo) Get(_ context.Context, id string) (*document.Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.store[id]; ok {
		cp := *d
		return &cp, nil
	}
	return nil, ErrNotFound
}

// List returns stored requests, newest first.
func (m *MemoryRepo) List(_ context.Context) ([]*document.Request, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*document.Request, 0, len(m.store))
	for _, d := range m.store {
		cp := *d
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
