package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

type groupService struct {
	groups GroupRepository
	users  UserRepository
	stores StoreRepository
}

// NewGroupService creates the group use-case service.
func NewGroupService(groups GroupRepository, users UserRepository, stores StoreRepository) GroupService {
	return &groupService{groups: groups, users: users, stores: stores}
}

func (s *groupService) List(ctx context.Context, principal Principal, page Page) ([]GroupView, error) {
	if principal.UserID == "" {
		return nil, ErrAuthenticationFailed
	}
	groups, err := s.groups.ListForMember(ctx, principal.UserID, page)
	if err != nil {
		return nil, err
	}
	views := make([]GroupView, 0, len(groups))
	for _, group := range groups {
		view, err := s.view(ctx, group)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *groupService) Detail(ctx context.Context, principal Principal, id string) (*GroupView, error) {
	group, err := s.memberGroup(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, *group)
}

func (s *groupService) Create(ctx context.Context, principal Principal, input GroupInput) (*GroupView, error) {
	if principal.UserID == "" {
		return nil, ErrAuthenticationFailed
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, NewValidationError("name", "this field is required")
	}
	members, err := s.checkMembers(ctx, input.MemberIDs)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	group := &domain.Group{
		Name:      strings.TrimSpace(*input.Name),
		OwnerID:   principal.UserID,
		MemberIDs: members,
		StoreIDs:  []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return s.view(ctx, *group)
}

func (s *groupService) Update(ctx context.Context, principal Principal, id string, input GroupInput) (*GroupView, error) {
	group, err := s.ownedGroup(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, NewValidationError("name", "this field may not be blank")
		}
		group.Name = name
	}
	if input.MemberIDs != nil {
		members, err := s.checkMembers(ctx, input.MemberIDs)
		if err != nil {
			return nil, err
		}
		group.MemberIDs = members
	}
	group.UpdatedAt = time.Now().UTC()
	if err := s.groups.Update(ctx, group); err != nil {
		return nil, fmt.Errorf("update group: %w", err)
	}
	return s.view(ctx, *group)
}

func (s *groupService) Delete(ctx context.Context, principal Principal, id string) error {
	group, err := s.ownedGroup(ctx, principal, id)
	if err != nil {
		return err
	}
	return s.groups.Delete(ctx, group.ID)
}

func (s *groupService) ToggleStore(ctx context.Context, principal Principal, groupID, storeID string) (bool, error) {
	group, err := s.memberGroup(ctx, principal, groupID)
	if err != nil {
		return false, err
	}
	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, NewValidationError("store_pk", "Store not exist")
		}
		return false, err
	}
	return s.groups.ToggleStore(ctx, group.ID, storeID)
}

func (s *groupService) memberGroup(ctx context.Context, principal Principal, id string) (*domain.Group, error) {
	if principal.UserID == "" {
		return nil, ErrAuthenticationFailed
	}
	group, err := s.groups.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(principal.UserID) {
		return nil, ErrPermissionDenied
	}
	return group, nil
}

func (s *groupService) ownedGroup(ctx context.Context, principal Principal, id string) (*domain.Group, error) {
	group, err := s.memberGroup(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if group.OwnerID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	return group, nil
}

func (s *groupService) checkMembers(ctx context.Context, ids []string) ([]string, error) {
	members := dedupe(ids)
	for _, id := range members {
		if _, err := s.users.FindByID(ctx, id); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, NewValidationError("members", fmt.Sprintf("invalid pk %q - object does not exist", id))
			}
			return nil, err
		}
	}
	return members, nil
}

func (s *groupService) view(ctx context.Context, group domain.Group) (*GroupView, error) {
	view := &GroupView{Group: group, Members: []domain.UserSummary{}, Stores: []domain.Store{}}
	for _, id := range group.MemberIDs {
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		view.Members = append(view.Members, user.Summary())
	}
	if len(group.StoreIDs) > 0 {
		stores, err := s.stores.Query(ctx, StoreQuery{IDs: group.StoreIDs}, Page{Number: 1, Size: len(group.StoreIDs)})
		if err != nil {
			return nil, err
		}
		view.Stores = stores
	}
	return view, nil
}
