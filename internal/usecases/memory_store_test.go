package usecases_test

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"contractflow.backend/internal/domain/entities"
	domainerrors "contractflow.backend/internal/domain/errors"
)

// memoryStore is a map-backed blueprint and contract store used for
// lifecycle scenarios that span several calls.
type memoryStore struct {
	mu         sync.Mutex
	blueprints map[uuid.UUID]entities.Blueprint
	contracts  map[uuid.UUID]entities.Contract
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		blueprints: make(map[uuid.UUID]entities.Blueprint),
		contracts:  make(map[uuid.UUID]entities.Contract),
	}
}

type memoryBlueprints struct{ s *memoryStore }
type memoryContracts struct{ s *memoryStore }
type memoryUnitOfWork struct{ s *memoryStore }

func (u memoryUnitOfWork) Do(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (u memoryUnitOfWork) WithLock(ctx context.Context) context.Context { return ctx }

func (r memoryBlueprints) Create(_ context.Context, b *entities.Blueprint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.blueprints[b.ID] = *b
	return nil
}

func (r memoryBlueprints) GetByID(_ context.Context, id uuid.UUID) (*entities.Blueprint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.blueprints[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	b.Fields = append([]entities.FieldDefinition(nil), b.Fields...)
	return &b, nil
}

func (r memoryBlueprints) List(context.Context) ([]*entities.Blueprint, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entities.Blueprint, 0, len(r.s.blueprints))
	for _, b := range r.s.blueprints {
		b := b
		out = append(out, &b)
	}
	return out, nil
}

func (r memoryBlueprints) Update(_ context.Context, b *entities.Blueprint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.blueprints[b.ID]; !ok {
		return domainerrors.ErrNotFound
	}
	r.s.blueprints[b.ID] = *b
	return nil
}

func (r memoryBlueprints) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.blueprints[id]; !ok {
		return domainerrors.ErrNotFound
	}
	delete(r.s.blueprints, id)
	return nil
}

func cloneContract(c entities.Contract) *entities.Contract {
	c.History = append([]entities.HistoryEntry(nil), c.History...)
	data := make(map[string]any, len(c.Data))
	for k, v := range c.Data {
		data[k] = v
	}
	c.Data = data
	return &c
}

func (r memoryContracts) Create(_ context.Context, c *entities.Contract) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.contracts[c.ID] = *cloneContract(*c)
	return nil
}

func (r memoryContracts) GetByID(_ context.Context, id uuid.UUID) (*entities.Contract, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.contracts[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return cloneContract(c), nil
}

func (r memoryContracts) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entities.Contract, error) {
	return r.GetByID(ctx, id)
}

func (r memoryContracts) List(_ context.Context, filter entities.ContractFilter) ([]*entities.Contract, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entities.Contract, 0, len(r.s.contracts))
	for _, c := range r.s.contracts {
		if len(filter.Statuses) > 0 && !containsStatus(filter.Statuses, c.Status) {
			continue
		}
		out = append(out, cloneContract(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() > out[j].ID.String() })
	return out, int64(len(out)), nil
}

func (r memoryContracts) SaveStatus(_ context.Context, id uuid.UUID, expected, target entities.ContractStatus, entry *entities.HistoryEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.contracts[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	if c.Status != expected {
		return domainerrors.ErrConflict
	}
	c.Status = target
	if entry != nil {
		c.History = append(append([]entities.HistoryEntry(nil), c.History...), *entry)
		c.UpdatedAt = entry.Timestamp
	}
	r.s.contracts[id] = c
	return nil
}

func containsStatus(list []entities.ContractStatus, s entities.ContractStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
