package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

type storeService struct {
	stores    StoreRepository
	sellLists SellListRepository
	bookings  BookingRepository
	users     UserRepository
}

// NewStoreService creates the store use-case service.
func NewStoreService(stores StoreRepository, sellLists SellListRepository, bookings BookingRepository, users UserRepository) StoreService {
	return &storeService{stores: stores, sellLists: sellLists, bookings: bookings, users: users}
}

func (s *storeService) List(ctx context.Context, principal Principal, query ListStoresQuery) ([]StoreView, error) {
	storeQuery, ok := BuildStoreQuery(query.Keyword, query.Types)
	if !ok {
		return []StoreView{}, nil
	}
	stores, err := s.stores.Query(ctx, storeQuery, query.Page)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, principal, stores)
}

func (s *storeService) ListByOwner(ctx context.Context, principal Principal, username string, page Page) ([]StoreView, error) {
	owner, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []StoreView{}, nil
		}
		return nil, err
	}
	stores, err := s.stores.Query(ctx, StoreQuery{OwnerID: owner.ID}, page)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, principal, stores)
}

func (s *storeService) Detail(ctx context.Context, principal Principal, id string) (*StoreView, error) {
	store, err := s.stores.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	views, err := s.views(ctx, principal, []domain.Store{*store})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *storeService) Create(ctx context.Context, principal Principal, cmd CreateStoreCommand) (*StoreView, error) {
	if principal.UserID == "" {
		return nil, ErrAuthenticationFailed
	}
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, NewValidationError("name", "this field is required")
	}
	kindMenu, err := domain.NewMenuKind(cmd.KindMenu)
	if err != nil {
		return nil, NewValidationError("kind_menu", err.Error())
	}
	kindDetail, err := domain.NewDetailKind(cmd.KindDetail)
	if err != nil {
		return nil, NewValidationError("kind_detail", err.Error())
	}
	if err := s.checkSellLists(ctx, cmd.SellListIDs); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	store := &domain.Store{
		Name:        name,
		Description: cmd.Description,
		KindMenu:    kindMenu,
		KindDetail:  kindDetail,
		PetFriendly: cmd.PetFriendly,
		City:        strings.TrimSpace(cmd.City),
		OwnerID:     principal.UserID,
		SellListIDs: dedupe(cmd.SellListIDs),
		PhotoURLs:   append([]string{}, cmd.PhotoURLs...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.stores.Create(ctx, store); err != nil {
		return nil, fmt.Errorf("create store: %w", err)
	}
	return s.Detail(ctx, principal, store.ID)
}

func (s *storeService) Update(ctx context.Context, principal Principal, id string, cmd UpdateStoreCommand) (*StoreView, error) {
	store, err := s.ownedStore(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if cmd.Name != nil {
		name := strings.TrimSpace(*cmd.Name)
		if name == "" {
			return nil, NewValidationError("name", "this field may not be blank")
		}
		store.Name = name
	}
	if cmd.Description != nil {
		store.Description = *cmd.Description
	}
	if cmd.KindMenu != nil {
		kind, err := domain.NewMenuKind(*cmd.KindMenu)
		if err != nil {
			return nil, NewValidationError("kind_menu", err.Error())
		}
		store.KindMenu = kind
	}
	if cmd.KindDetail != nil {
		kind, err := domain.NewDetailKind(*cmd.KindDetail)
		if err != nil {
			return nil, NewValidationError("kind_detail", err.Error())
		}
		store.KindDetail = kind
	}
	if cmd.PetFriendly != nil {
		store.PetFriendly = *cmd.PetFriendly
	}
	if cmd.City != nil {
		store.City = strings.TrimSpace(*cmd.City)
	}
	if cmd.SellListIDs != nil {
		if err := s.checkSellLists(ctx, cmd.SellListIDs); err != nil {
			return nil, err
		}
		store.SellListIDs = dedupe(cmd.SellListIDs)
	}
	if cmd.PhotoURLs != nil {
		store.PhotoURLs = append([]string{}, cmd.PhotoURLs...)
	}
	store.UpdatedAt = time.Now().UTC()
	if err := s.stores.Update(ctx, store); err != nil {
		return nil, fmt.Errorf("update store: %w", err)
	}
	return s.Detail(ctx, principal, store.ID)
}

func (s *storeService) Delete(ctx context.Context, principal Principal, id string) error {
	store, err := s.ownedStore(ctx, principal, id)
	if err != nil {
		return err
	}
	if err := s.stores.Delete(ctx, store.ID); err != nil {
		return fmt.Errorf("delete store: %w", err)
	}
	return nil
}

func (s *storeService) ownedStore(ctx context.Context, principal Principal, id string) (*domain.Store, error) {
	if !principal.Authenticated() {
		return nil, ErrAuthenticationFailed
	}
	store, err := s.stores.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.owns(store.OwnerID, store.Owner.KakaoID) {
		return nil, ErrPermissionDenied
	}
	return store, nil
}

func (s *storeService) checkSellLists(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if _, err := s.sellLists.FindByID(ctx, id); err != nil {
			if errors.Is(err, ErrNotFound) {
				return NewValidationError("sell_list", fmt.Sprintf("%s does not exist", id))
			}
			return err
		}
	}
	return nil
}

// views attaches rating and the principal-relative flags.
func (s *storeService) views(ctx context.Context, principal Principal, stores []domain.Store) ([]StoreView, error) {
	var booking *domain.Booking
	if principal.UserID != "" && len(stores) > 0 {
		found, err := s.bookings.FindByUser(ctx, principal.UserID)
		switch {
		case err == nil:
			booking = found
		case !errors.Is(err, ErrNotFound):
			return nil, fmt.Errorf("load booking: %w", err)
		}
	}
	return buildStoreViews(principal, booking, stores), nil
}

func buildStoreViews(principal Principal, booking *domain.Booking, stores []domain.Store) []StoreView {
	views := make([]StoreView, 0, len(stores))
	for _, store := range stores {
		views = append(views, StoreView{
			Store:   store,
			Rating:  store.Stats.Rating(),
			IsOwner: principal.owns(store.OwnerID, store.Owner.KakaoID),
			IsLiked: booking != nil && booking.Contains(store.ID),
		})
	}
	return views
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
