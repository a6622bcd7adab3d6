package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

type sellListService struct {
	items  SellListRepository
	stores StoreRepository
}

// NewSellListService creates the sell list use-case service.
func NewSellListService(items SellListRepository, stores StoreRepository) SellListService {
	return &sellListService{items: items, stores: stores}
}

func (s *sellListService) List(ctx context.Context) ([]domain.SellList, error) {
	return s.items.List(ctx)
}

func (s *sellListService) Detail(ctx context.Context, id string) (*domain.SellList, error) {
	return s.items.FindByID(ctx, id)
}

func (s *sellListService) Create(ctx context.Context, input SellListInput) (*domain.SellList, error) {
	item, err := newSellList(input)
	if err != nil {
		return nil, err
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create sell list: %w", err)
	}
	return item, nil
}

func (s *sellListService) Update(ctx context.Context, id string, input SellListInput) (*domain.SellList, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, NewValidationError("name", "this field may not be blank")
		}
		item.Name = name
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	item.UpdatedAt = time.Now().UTC()
	if err := s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update sell list: %w", err)
	}
	return item, nil
}

func (s *sellListService) Delete(ctx context.Context, id string) error {
	if _, err := s.items.FindByID(ctx, id); err != nil {
		return err
	}
	return s.items.Delete(ctx, id)
}

func (s *sellListService) ListForStore(ctx context.Context, storeID string, page Page) ([]domain.SellList, error) {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return SliceWindow(store.SellList, page), nil
}

func (s *sellListService) CreateForStore(ctx context.Context, storeID string, input SellListInput) (*domain.SellList, error) {
	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		return nil, err
	}
	item, err := s.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.stores.AddSellList(ctx, storeID, item.ID); err != nil {
		return nil, fmt.Errorf("attach sell list: %w", err)
	}
	return item, nil
}

func newSellList(input SellListInput) (*domain.SellList, error) {
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, NewValidationError("name", "this field is required")
	}
	now := time.Now().UTC()
	item := &domain.SellList{
		Name:      strings.TrimSpace(*input.Name),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	return item, nil
}
