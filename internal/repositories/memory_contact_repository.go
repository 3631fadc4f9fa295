package repositories

import (
	"context"
	"sort"
	"sync"

	"phonebook/internal/models"
)

// MemoryContactRepository keeps contacts in process. Ids come from a
// counter that only grows, so deleted ids are never handed out again.
type MemoryContactRepository struct {
	mu       sync.RWMutex
	lastID   int64
	contacts map[int64]models.Contact
}

var _ models.ContactRepository = (*MemoryContactRepository)(nil)

func NewMemoryContactRepository() *MemoryContactRepository {
	return &MemoryContactRepository{contacts: make(map[int64]models.Contact)}
}

func (r *MemoryContactRepository) List(ctx context.Context, key models.SortKey) ([]*models.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapError("listing contacts", err)
	}

	r.mu.RLock()
	contacts := make([]*models.Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		c := c
		contacts = append(contacts, &c)
	}
	r.mu.RUnlock()

	sort.Slice(contacts, func(i, j int) bool { return key.Less(contacts[i], contacts[j]) })
	return contacts, nil
}

func (r *MemoryContactRepository) Get(ctx context.Context, id int64) (*models.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapError("getting contact", err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.contacts[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &c, nil
}

func (r *MemoryContactRepository) Create(ctx context.Context, fields models.ContactFields) (*models.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapError("saving contact", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastID++
	c := fields.WithID(r.lastID)
	r.contacts[c.ID] = *c
	return c, nil
}

func (r *MemoryContactRepository) Update(ctx context.Context, id int64, fields models.ContactFields) (*models.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapError("updating contact", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contacts[id]; !ok {
		return nil, models.ErrNotFound
	}
	c := fields.WithID(id)
	r.contacts[id] = *c
	return c, nil
}

func (r *MemoryContactRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return wrapError("deleting contact", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contacts[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.contacts, id)
	return nil
}

func (r *MemoryContactRepository) Ping(ctx context.Context) error { return ctx.Err() }

func (r *MemoryContactRepository) Close() error { return nil }
