// Package memory keeps every repository in-process. It backs local runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

// DB holds all records behind a single lock and tracks insertion order.
type DB struct {
	mu sync.RWMutex

	stores     map[string]domain.Store
	storeOrder []string
	reviews    map[string]domain.Review
	reviewOrd  []string
	users      map[string]domain.User
	sellLists  map[string]domain.SellList
	sellOrder  []string
	bookings   map[string]domain.Booking // key: user ID
	groups     map[string]domain.Group
	groupOrder []string
	notices    []domain.Notice
}

// NewDB initializes an empty in-memory database.
func NewDB() *DB {
	return &DB{
		stores:    make(map[string]domain.Store),
		reviews:   make(map[string]domain.Review),
		users:     make(map[string]domain.User),
		sellLists: make(map[string]domain.SellList),
		bookings:  make(map[string]domain.Booking),
		groups:    make(map[string]domain.Group),
	}
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

func removeID(ids []string, id string) []string {
	out := ids[:0:0]
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string{}, in...)
}

// StoreRepository implements application.StoreRepository.
type StoreRepository struct {
	db *DB
}

func NewStoreRepository(db *DB) *StoreRepository {
	return &StoreRepository{db: db}
}

func (r *StoreRepository) Query(_ context.Context, query application.StoreQuery, page application.Page) ([]domain.Store, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	matched := make([]domain.Store, 0, len(r.db.storeOrder))
	for _, id := range r.db.storeOrder {
		store, ok := r.db.stores[id]
		if !ok || !query.Matches(store) {
			continue
		}
		matched = append(matched, r.db.hydrateStore(store))
	}
	sortStores(matched, query.Sort)
	return application.SliceWindow(matched, page), nil
}

func (r *StoreRepository) FindByID(_ context.Context, id string) (*domain.Store, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	store, ok := r.db.stores[id]
	if !ok {
		return nil, application.ErrNotFound
	}
	hydrated := r.db.hydrateStore(store)
	return &hydrated, nil
}

func (r *StoreRepository) Create(_ context.Context, store *domain.Store) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	store.ID = newID()
	r.db.stores[store.ID] = stripStore(*store)
	r.db.storeOrder = append(r.db.storeOrder, store.ID)
	return nil
}

func (r *StoreRepository) Update(_ context.Context, store *domain.Store) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.stores[store.ID]; !ok {
		return application.ErrNotFound
	}
	r.db.stores[store.ID] = stripStore(*store)
	return nil
}

func (r *StoreRepository) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.stores[id]; !ok {
		return application.ErrNotFound
	}
	delete(r.db.stores, id)
	r.db.storeOrder = removeID(r.db.storeOrder, id)
	for reviewID, review := range r.db.reviews {
		if review.StoreID == id {
			review.StoreID = ""
			r.db.reviews[reviewID] = review
		}
	}
	for userID, booking := range r.db.bookings {
		booking.StoreIDs = removeID(booking.StoreIDs, id)
		r.db.bookings[userID] = booking
	}
	for groupID, group := range r.db.groups {
		group.StoreIDs = removeID(group.StoreIDs, id)
		r.db.groups[groupID] = group
	}
	return nil
}

func (r *StoreRepository) AddSellList(_ context.Context, storeID, sellListID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	store, ok := r.db.stores[storeID]
	if !ok {
		return application.ErrNotFound
	}
	for _, id := range store.SellListIDs {
		if id == sellListID {
			return nil
		}
	}
	store.SellListIDs = append(cloneStrings(store.SellListIDs), sellListID)
	r.db.stores[storeID] = store
	return nil
}

// stripStore drops read-time fields before persisting.
func stripStore(store domain.Store) domain.Store {
	store.Owner = domain.UserSummary{}
	store.SellList = nil
	store.Stats = domain.StoreStats{}
	store.SellListIDs = cloneStrings(store.SellListIDs)
	store.PhotoURLs = cloneStrings(store.PhotoURLs)
	return store
}

// hydrateStore fills owner, sell list and review stats. Callers hold the lock.
func (db *DB) hydrateStore(store domain.Store) domain.Store {
	if owner, ok := db.users[store.OwnerID]; ok {
		store.Owner = owner.Summary()
	}
	store.SellList = make([]domain.SellList, 0, len(store.SellListIDs))
	for _, id := range store.SellListIDs {
		if item, ok := db.sellLists[id]; ok {
			store.SellList = append(store.SellList, item)
		}
	}
	store.SellListIDs = cloneStrings(store.SellListIDs)
	store.PhotoURLs = cloneStrings(store.PhotoURLs)
	store.Stats = domain.StoreStats{}
	for _, review := range db.reviews {
		if review.StoreID == store.ID {
			store.Stats.ReviewCount++
			store.Stats.RatingTotal += review.Total()
		}
	}
	return store
}

func averageOf(stats domain.StoreStats) float64 {
	if stats.ReviewCount == 0 {
		return 0
	}
	return float64(stats.RatingTotal) / float64(stats.ReviewCount)
}

func sortStores(stores []domain.Store, order application.StoreSort) {
	switch order {
	case application.SortRatingDesc:
		sort.SliceStable(stores, func(i, j int) bool {
			a, b := stores[i].Stats, stores[j].Stats
			if (a.ReviewCount == 0) != (b.ReviewCount == 0) {
				return b.ReviewCount == 0
			}
			return averageOf(a) > averageOf(b)
		})
	case application.SortReviewCountDesc:
		sort.SliceStable(stores, func(i, j int) bool {
			return stores[i].Stats.ReviewCount > stores[j].Stats.ReviewCount
		})
	}
}
