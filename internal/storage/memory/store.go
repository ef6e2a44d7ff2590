package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hongminglow/society-be/internal/models"
	"github.com/hongminglow/society-be/internal/storage"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

// Store keeps every ledger in process memory. Records are returned in insertion order.
type Store struct {
	mu       sync.RWMutex
	accounts collection[models.Account]
	notices  collection[models.Notice]
	funds    collection[models.Fund]
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		accounts: newCollection[models.Account](),
		notices:  newCollection[models.Notice](),
		funds:    newCollection[models.Fund](),
	}
}

// Close is a no-op.
func (s *Store) Close() {}

func (s *Store) CreateAccount(_ context.Context, account models.Account) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.accounts.all() {
		if strings.EqualFold(existing.Email, account.Email) {
			return models.Account{}, storage.ErrAlreadyExists
		}
	}
	if account.ID == "" {
		account.ID = storage.NewID()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	s.accounts.put(account.ID, account)
	return account, nil
}

func (s *Store) FindAccountByID(_ context.Context, id string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts.get(id)
}

func (s *Store) FindAccountByEmail(_ context.Context, email string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, account := range s.accounts.all() {
		if strings.EqualFold(account.Email, email) {
			return account, nil
		}
	}
	return models.Account{}, storage.ErrNotFound
}

func (s *Store) ListAccounts(_ context.Context) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accounts.all(), nil
}

func (s *Store) DeleteAccount(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts.remove(id)
}

func (s *Store) CreateNotice(_ context.Context, notice models.Notice) (models.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if notice.ID == "" {
		notice.ID = storage.NewID()
	}
	s.notices.put(notice.ID, notice)
	return notice, nil
}

func (s *Store) FindNoticeByID(_ context.Context, id string) (models.Notice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notices.get(id)
}

func (s *Store) ListNotices(_ context.Context) ([]models.Notice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notices.all(), nil
}

func (s *Store) UpdateNotice(_ context.Context, id string, patch models.NoticePatch) (models.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notice, err := s.notices.get(id)
	if err != nil {
		return models.Notice{}, err
	}
	notice = patch.Apply(notice)
	s.notices.put(id, notice)
	return notice, nil
}

func (s *Store) DeleteNotice(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notices.remove(id)
}

func (s *Store) CreateFund(_ context.Context, fund models.Fund) (models.Fund, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if fund.ID == "" {
		fund.ID = storage.NewID()
	}
	s.funds.put(fund.ID, fund)
	return fund, nil
}

func (s *Store) ListFunds(_ context.Context) ([]models.Fund, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.funds.all(), nil
}

func (s *Store) DeleteFund(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.funds.remove(id)
}

// collection is an insertion-ordered map. Callers hold Store.mu.
type collection[T any] struct {
	order []string
	items map[string]T
}

func newCollection[T any]() collection[T] {
	return collection[T]{items: make(map[string]T)}
}

func (c *collection[T]) put(id string, item T) {
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	c.items[id] = item
}

func (c *collection[T]) get(id string) (T, error) {
	item, ok := c.items[id]
	if !ok {
		var zero T
		return zero, storage.ErrNotFound
	}
	return item, nil
}

func (c *collection[T]) remove(id string) error {
	if _, ok := c.items[id]; !ok {
		return storage.ErrNotFound
	}
	delete(c.items, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *collection[T]) all() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}
