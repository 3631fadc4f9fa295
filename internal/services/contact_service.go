package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"phonebook/internal/models"
	"phonebook/internal/utils"
)

const DefaultOperationTimeout = 5 * time.Second

// Notifier receives an event after every successful mutation.
type Notifier interface {
	Publish(event models.ContactEvent)
}

// ContactService is the contact store. It validates before touching the
// backend, serializes operations on the same id and bounds every call
// with a deadline.
type ContactService struct {
	repo     models.ContactRepository
	sortKey  models.SortKey
	timeout  time.Duration
	locks    *keyedMutex
	notifier Notifier
}

type Option func(*ContactService)

func WithSortKey(key models.SortKey) Option {
	return func(s *ContactService) { s.sortKey = key }
}

func WithOperationTimeout(d time.Duration) Option {
	return func(s *ContactService) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithNotifier(n Notifier) Option {
	return func(s *ContactService) { s.notifier = n }
}

func NewContactService(repo models.ContactRepository, opts ...Option) *ContactService {
	s := &ContactService{
		repo:    repo,
		sortKey: models.SortByNameSurname,
		timeout: DefaultOperationTimeout,
		locks:   newKeyedMutex(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ContactService) SortKey() models.SortKey { return s.sortKey }

// bounded applies the operation timeout to ctx.
func (s *ContactService) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// locked bounds ctx and takes the lock for id. done releases both and may
// be called more than once.
func (s *ContactService) locked(ctx context.Context, id int64) (context.Context, func(), error) {
	ctx, cancel := s.bounded(ctx)
	unlock, err := s.locks.Lock(ctx, id)
	if err != nil {
		cancel()
		return nil, nil, s.classify(ctx, fmt.Errorf("error waiting for contact %d: %w", id, err))
	}
	var once sync.Once
	return ctx, func() { once.Do(func() { unlock(); cancel() }) }, nil
}

// classify turns a blown deadline into ErrStorageUnavailable.
func (s *ContactService) classify(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, models.ErrStorageUnavailable) || errors.Is(err, models.ErrNotFound) {
		return err
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", models.ErrStorageUnavailable, err)
	}
	return err
}

func (s *ContactService) publish(event models.ContactEvent) {
	if s.notifier != nil {
		s.notifier.Publish(event)
	}
}

func (s *ContactService) List(ctx context.Context) ([]*models.Contact, error) {
	ctx, cancel := s.bounded(ctx)
	defer cancel()

	contacts, err := s.repo.List(ctx, s.sortKey)
	if err != nil {
		return nil, s.classify(ctx, err)
	}
	return contacts, nil
}

func (s *ContactService) Get(ctx context.Context, id int64) (*models.Contact, error) {
	ctx, done, err := s.locked(ctx, id)
	if err != nil {
		return nil, err
	}
	defer done()

	contact, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.classify(ctx, err)
	}
	return contact, nil
}

func (s *ContactService) Create(ctx context.Context, fields models.ContactFields) (*models.Contact, error) {
	fields = fields.Normalize()
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := s.bounded(ctx)
	defer cancel()

	contact, err := s.repo.Create(ctx, fields)
	if err != nil {
		return nil, s.classify(ctx, err)
	}

	utils.LogDebug("Created contact %d", contact.ID)
	s.publish(models.ContactEvent{Type: models.EventContactCreated, ID: contact.ID, Contact: contact})
	return contact, nil
}

func (s *ContactService) Update(ctx context.Context, id int64, fields models.ContactFields) (*models.Contact, error) {
	fields = fields.Normalize()
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	ctx, done, err := s.locked(ctx, id)
	if err != nil {
		return nil, err
	}
	defer done()

	contact, err := s.repo.Update(ctx, id, fields)
	err = s.classify(ctx, err)
	done()
	if err != nil {
		return nil, err
	}

	utils.LogDebug("Updated contact %d", id)
	s.publish(models.ContactEvent{Type: models.EventContactUpdated, ID: id, Contact: contact})
	return contact, nil
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	ctx, done, err := s.locked(ctx, id)
	if err != nil {
		return err
	}
	defer done()

	err = s.classify(ctx, s.repo.Delete(ctx, id))
	// subscribers must not hold up the next operation on this id
	done()
	if err != nil {
		return err
	}

	utils.LogDebug("Deleted contact %d", id)
	s.publish(models.ContactEvent{Type: models.EventContactDeleted, ID: id})
	return nil
}

func (s *ContactService) Ping(ctx context.Context) error {
	ctx, cancel := s.bounded(ctx)
	defer cancel()
	return s.classify(ctx, s.repo.Ping(ctx))
}
