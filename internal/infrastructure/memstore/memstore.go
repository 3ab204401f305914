// Package memstore provides map-backed implementations of the repository
// contracts. It is the "demo" storage backend: data lives only for the
// process lifetime, mirroring the demo mode of the original product where
// nothing left the browser. It also serves as the test double for every
// service test in this repository.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stockmate-app/stockmate-api/internal/domain/entity"
	"github.com/stockmate-app/stockmate-api/internal/domain/repository"
)

// Store holds all in-memory collections behind one lock. Snapshots handed
// out are copies; callers can never mutate stored records through them.
type Store struct {
	mu    sync.RWMutex
	items map[uuid.UUID]entity.InventoryItem
	sales map[uuid.UUID]entity.Sale
	users map[uuid.UUID]entity.User
	keys  map[string]entity.IdempotencyKey

	// FailNextWrite makes the next mutating call return this error, then
	// resets. Used by tests to exercise persistence-failure paths.
	FailNextWrite error
}

// New creates an empty in-memory store
func New() *Store {
	return &Store{
		items: make(map[uuid.UUID]entity.InventoryItem),
		sales: make(map[uuid.UUID]entity.Sale),
		users: make(map[uuid.UUID]entity.User),
		keys:  make(map[string]entity.IdempotencyKey),
	}
}

func (s *Store) takeWriteError() error {
	err := s.FailNextWrite
	s.FailNextWrite = nil
	return err
}

// Items returns the store's ItemRepository view
func (s *Store) Items() repository.ItemRepository { return &itemStore{s} }

// Sales returns the store's SaleRepository view
func (s *Store) Sales() repository.SaleRepository { return &saleStore{s} }

// Users returns the store's UserRepository view
func (s *Store) Users() repository.UserRepository { return &userStore{s} }

// IdempotencyKeys returns the store's IdempotencyRepository view
func (s *Store) IdempotencyKeys() repository.IdempotencyRepository { return &keyStore{s} }

type itemStore struct{ *Store }

func (s *itemStore) Create(ctx context.Context, item *entity.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeWriteError(); err != nil {
		return err
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	s.items[item.ID] = *item
	return nil
}

func (s *itemStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (s *itemStore) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.InventoryItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := s.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *itemStore) Update(ctx context.Context, item *entity.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeWriteError(); err != nil {
		return err
	}
	if _, ok := s.items[item.ID]; !ok {
		return nil
	}
	item.UpdatedAt = time.Now()
	s.items[item.ID] = *item
	return nil
}

func (s *itemStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeWriteError(); err != nil {
		return err
	}
	delete(s.items, id)
	return nil
}

func matchesFilter(item *entity.InventoryItem, params *repository.ItemFilterParams) bool {
	if params.Search != "" {
		search := strings.ToLower(params.Search)
		if !strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.Category), search) {
			return false
		}
	}
	if params.Category != "" && item.Category != params.Category {
		return false
	}
	if params.LowStock && item.StockLevel > item.LowStockThreshold {
		return false
	}
	return true
}

func (s *itemStore) List(ctx context.Context, userID uuid.UUID, params *repository.ItemFilterParams) ([]entity.InventoryItem, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entity.InventoryItem, 0)
	for _, item := range s.items {
		if item.UserID != userID {
			continue
		}
		if !matchesFilter(&item, params) {
			continue
		}
		matched = append(matched, item)
	}

	sortItems(matched, params.SortBy, params.SortOrder)

	total := int64(len(matched))
	params.Pagination.Validate()
	start := params.Pagination.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.Pagination.PerPage
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

func sortItems(items []entity.InventoryItem, sortBy, sortOrder string) {
	asc := sortOrder == "ASC" || sortOrder == "asc"
	sort.Slice(items, func(a, b int) bool {
		var less bool
		switch sortBy {
		case "name":
			less = items[a].Name < items[b].Name
		case "category":
			less = items[a].Category < items[b].Category
		case "price":
			less = items[a].Price < items[b].Price
		case "stock_level":
			less = items[a].StockLevel < items[b].StockLevel
		default:
			// created_at, newest first unless ascending was asked for
			less = items[a].CreatedAt.Before(items[b].CreatedAt)
		}
		if asc {
			return less
		}
		return !less
	})
}

func (s *itemStore) ListAll(ctx context.Context, userID uuid.UUID) ([]entity.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.InventoryItem, 0)
	for _, item := range s.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].CreatedAt.After(out[b].CreatedAt)
	})
	return out, nil
}

func (s *itemStore) GetLowStock(ctx context.Context, userID uuid.UUID) ([]entity.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.InventoryItem, 0)
	for _, item := range s.items {
		if item.UserID == userID && item.StockLevel <= item.LowStockThreshold {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].Name < out[b].Name
	})
	return out, nil
}

func (s *itemStore) SetStockLevels(ctx context.Context, updates []repository.StockUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeWriteError(); err != nil {
		return err
	}
	for _, u := range updates {
		item, ok := s.items[u.ItemID]
		if !ok {
			continue
		}
		item.StockLevel = u.StockLevel
		if u.SoldAt != nil {
			at := *u.SoldAt
			item.LastSoldAt = &at
		}
		item.UpdatedAt = time.Now()
		s.items[u.ItemID] = item
	}
	return nil
}

type saleStore struct{ *Store }

func (s *saleStore) Create(ctx context.Context, sale *entity.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeWriteError(); err != nil {
		return err
	}
	if sale.ID == uuid.Nil {
		sale.ID = uuid.New()
	}
	sale.CreatedAt = time.Now()
	for i := range sale.Items {
		if sale.Items[i].ID == uuid.Nil {
			sale.Items[i].ID = uuid.New()
		}
		sale.Items[i].SaleID = sale.ID
	}
	stored := *sale
	stored.Items = make([]entity.SaleItem, len(sale.Items))
	copy(stored.Items, sale.Items)
	s.sales[sale.ID] = stored
	return nil
}

func (s *saleStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sale, ok := s.sales[id]
	if !ok {
		return nil, nil
	}
	out := sale
	out.Items = make([]entity.SaleItem, len(sale.Items))
	copy(out.Items, sale.Items)
	return &out, nil
}

func (s *saleStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeWriteError(); err != nil {
		return err
	}
	delete(s.sales, id)
	return nil
}

func (s *saleStore) List(ctx context.Context, userID uuid.UUID, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	all, err := s.ListAll(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	matched := make([]entity.Sale, 0, len(all))
	for _, sale := range all {
		if params.From != nil && sale.SoldAt.Before(*params.From) {
			continue
		}
		if params.To != nil && !sale.SoldAt.Before(*params.To) {
			continue
		}
		matched = append(matched, sale)
	}

	total := int64(len(matched))
	params.Pagination.Validate()
	start := params.Pagination.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.Pagination.PerPage
	if end > len(matched) {
		end = len(matched)
	}

	return matched[start:end], total, nil
}

func (s *saleStore) ListAll(ctx context.Context, userID uuid.UUID) ([]entity.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Sale, 0)
	for _, sale := range s.sales {
		if sale.UserID != userID {
			continue
		}
		cp := sale
		cp.Items = make([]entity.SaleItem, len(sale.Items))
		copy(cp.Items, sale.Items)
		out = append(out, cp)
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].SoldAt.After(out[b].SoldAt)
	})
	return out, nil
}

type userStore struct{ *Store }

func (s *userStore) Create(ctx context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeWriteError(); err != nil {
		return err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

func (s *userStore) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, nil
}

func (s *userStore) Update(ctx context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeWriteError(); err != nil {
		return err
	}
	if _, ok := s.users[user.ID]; !ok {
		return nil
	}
	user.UpdatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

type keyStore struct{ *Store }

func (s *keyStore) Create(ctx context.Context, key *entity.IdempotencyKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.takeWriteError(); err != nil {
		return err
	}
	if key.ID == uuid.Nil {
		key.ID = uuid.New()
	}
	key.CreatedAt = time.Now()
	s.keys[key.Key+":"+key.UserID.String()] = *key
	return nil
}

func (s *keyStore) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ikey, ok := s.keys[key+":"+userID.String()]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (s *keyStore) DeleteExpired(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for k, v := range s.keys {
		if now.After(v.ExpiresAt) {
			delete(s.keys, k)
		}
	}
	return nil
}
