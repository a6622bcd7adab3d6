package memory

import (
	"context"
	"time"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

// GroupRepository implements application.GroupRepository.
type GroupRepository struct {
	db *DB
}

func NewGroupRepository(db *DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) ListForMember(_ context.Context, userID string, page application.Page) ([]domain.Group, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	res := make([]domain.Group, 0)
	for _, id := range r.db.groupOrder {
		group, ok := r.db.groups[id]
		if ok && group.HasMember(userID) {
			res = append(res, cloneGroup(group))
		}
	}
	return application.SliceWindow(res, page), nil
}

func (r *GroupRepository) FindByID(_ context.Context, id string) (*domain.Group, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	group, ok := r.db.groups[id]
	if !ok {
		return nil, application.ErrNotFound
	}
	group = cloneGroup(group)
	return &group, nil
}

func (r *GroupRepository) Create(_ context.Context, group *domain.Group) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	group.ID = newID()
	r.db.groups[group.ID] = cloneGroup(*group)
	r.db.groupOrder = append(r.db.groupOrder, group.ID)
	return nil
}

func (r *GroupRepository) Update(_ context.Context, group *domain.Group) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.groups[group.ID]; !ok {
		return application.ErrNotFound
	}
	r.db.groups[group.ID] = cloneGroup(*group)
	return nil
}

func (r *GroupRepository) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.groups[id]; !ok {
		return application.ErrNotFound
	}
	delete(r.db.groups, id)
	r.db.groupOrder = removeID(r.db.groupOrder, id)
	return nil
}

func (r *GroupRepository) ToggleStore(_ context.Context, groupID, storeID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	group, ok := r.db.groups[groupID]
	if !ok {
		return false, application.ErrNotFound
	}
	added := !group.HasStore(storeID)
	if added {
		group.StoreIDs = append(cloneStrings(group.StoreIDs), storeID)
	} else {
		group.StoreIDs = removeID(group.StoreIDs, storeID)
	}
	group.UpdatedAt = time.Now().UTC()
	r.db.groups[groupID] = group
	return added, nil
}

func cloneGroup(group domain.Group) domain.Group {
	group.MemberIDs = cloneStrings(group.MemberIDs)
	group.StoreIDs = cloneStrings(group.StoreIDs)
	return group
}
