package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

type reviewService struct {
	reviews ReviewRepository
	stores  StoreRepository
	users   UserRepository
}

// NewReviewService creates the review use-case service.
func NewReviewService(reviews ReviewRepository, stores StoreRepository, users UserRepository) ReviewService {
	return &reviewService{reviews: reviews, stores: stores, users: users}
}

func (s *reviewService) ListForStore(ctx context.Context, storeID string, page Page) ([]domain.Review, error) {
	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		return nil, err
	}
	return s.reviews.ListByStore(ctx, storeID, page)
}

func (s *reviewService) ListForUser(ctx context.Context, username string, page Page) ([]domain.Review, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []domain.Review{}, nil
		}
		return nil, err
	}
	return s.reviews.ListByUser(ctx, user.ID, page)
}

func (s *reviewService) Detail(ctx context.Context, id string) (*domain.Review, error) {
	return s.reviews.FindByID(ctx, id)
}

func (s *reviewService) Create(ctx context.Context, principal Principal, storeID string, input ReviewInput) (*domain.Review, error) {
	if principal.UserID == "" {
		return nil, ErrAuthenticationFailed
	}
	if _, err := s.stores.FindByID(ctx, storeID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	review := &domain.Review{
		UserID:      principal.UserID,
		StoreID:     storeID,
		Description: input.Description,
		PhotoURLs:   append([]string{}, input.PhotoURLs...),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	ratings := []struct {
		field string
		value int
		dst   *int
	}{
		{"taste_rating", input.Taste, &review.Taste},
		{"atmosphere_rating", input.Atmosphere, &review.Atmosphere},
		{"kindness_rating", input.Kindness, &review.Kindness},
		{"clean_rating", input.Cleanliness, &review.Cleanliness},
		{"parking_rating", input.Parking, &review.Parking},
		{"restroom_rating", input.Restroom, &review.Restroom},
	}
	for _, r := range ratings {
		if err := assignSubRating(r.field, r.value, r.dst); err != nil {
			return nil, err
		}
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return s.reviews.FindByID(ctx, review.ID)
}

func (s *reviewService) Update(ctx context.Context, principal Principal, id string, patch ReviewPatch) (*domain.Review, error) {
	review, err := s.authoredReview(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	ratings := []struct {
		field string
		value *int
		dst   *int
	}{
		{"taste_rating", patch.Taste, &review.Taste},
		{"atmosphere_rating", patch.Atmosphere, &review.Atmosphere},
		{"kindness_rating", patch.Kindness, &review.Kindness},
		{"clean_rating", patch.Cleanliness, &review.Cleanliness},
		{"parking_rating", patch.Parking, &review.Parking},
		{"restroom_rating", patch.Restroom, &review.Restroom},
	}
	for _, r := range ratings {
		if r.value == nil {
			continue
		}
		if err := assignSubRating(r.field, *r.value, r.dst); err != nil {
			return nil, err
		}
	}
	if patch.Description != nil {
		review.Description = *patch.Description
	}
	if patch.PhotoURLs != nil {
		review.PhotoURLs = append([]string{}, patch.PhotoURLs...)
	}
	review.UpdatedAt = time.Now().UTC()
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return s.reviews.FindByID(ctx, review.ID)
}

func (s *reviewService) Delete(ctx context.Context, principal Principal, id string) error {
	review, err := s.authoredReview(ctx, principal, id)
	if err != nil {
		return err
	}
	return s.reviews.Delete(ctx, review.ID)
}

func (s *reviewService) authoredReview(ctx context.Context, principal Principal, id string) (*domain.Review, error) {
	if principal.UserID == "" {
		return nil, ErrAuthenticationFailed
	}
	review, err := s.reviews.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.UserID != principal.UserID {
		return nil, ErrPermissionDenied
	}
	return review, nil
}

func assignSubRating(field string, value int, dst *int) error {
	rating, err := domain.NewSubRating(field, value)
	if err != nil {
		return NewValidationError(field, err.Error())
	}
	*dst = int(rating)
	return nil
}
