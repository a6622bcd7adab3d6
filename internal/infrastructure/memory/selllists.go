package memory

import (
	"context"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

// SellListRepository implements application.SellListRepository.
type SellListRepository struct {
	db *DB
}

func NewSellListRepository(db *DB) *SellListRepository {
	return &SellListRepository{db: db}
}

func (r *SellListRepository) List(_ context.Context) ([]domain.SellList, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	res := make([]domain.SellList, 0, len(r.db.sellOrder))
	for _, id := range r.db.sellOrder {
		if item, ok := r.db.sellLists[id]; ok {
			res = append(res, item)
		}
	}
	return res, nil
}

func (r *SellListRepository) FindByID(_ context.Context, id string) (*domain.SellList, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	item, ok := r.db.sellLists[id]
	if !ok {
		return nil, application.ErrNotFound
	}
	return &item, nil
}

func (r *SellListRepository) Create(_ context.Context, item *domain.SellList) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	item.ID = newID()
	r.db.sellLists[item.ID] = *item
	r.db.sellOrder = append(r.db.sellOrder, item.ID)
	return nil
}

func (r *SellListRepository) Update(_ context.Context, item *domain.SellList) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.sellLists[item.ID]; !ok {
		return application.ErrNotFound
	}
	r.db.sellLists[item.ID] = *item
	return nil
}

func (r *SellListRepository) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.sellLists[id]; !ok {
		return application.ErrNotFound
	}
	delete(r.db.sellLists, id)
	r.db.sellOrder = removeID(r.db.sellOrder, id)
	for storeID, store := range r.db.stores {
		store.SellListIDs = removeID(store.SellListIDs, id)
		r.db.stores[storeID] = store
	}
	return nil
}
