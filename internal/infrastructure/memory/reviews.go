package memory

import (
	"context"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

// ReviewRepository implements application.ReviewRepository.
type ReviewRepository struct {
	db *DB
}

func NewReviewRepository(db *DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) ListByStore(_ context.Context, storeID string, page application.Page) ([]domain.Review, error) {
	return r.list(func(review domain.Review) bool { return review.StoreID == storeID }, page), nil
}

func (r *ReviewRepository) ListByUser(_ context.Context, userID string, page application.Page) ([]domain.Review, error) {
	return r.list(func(review domain.Review) bool { return review.UserID == userID }, page), nil
}

func (r *ReviewRepository) list(match func(domain.Review) bool, page application.Page) []domain.Review {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	res := make([]domain.Review, 0)
	for _, id := range r.db.reviewOrd {
		review, ok := r.db.reviews[id]
		if ok && match(review) {
			res = append(res, r.db.hydrateReview(review))
		}
	}
	return application.SliceWindow(res, page)
}

func (r *ReviewRepository) FindByID(_ context.Context, id string) (*domain.Review, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	review, ok := r.db.reviews[id]
	if !ok {
		return nil, application.ErrNotFound
	}
	hydrated := r.db.hydrateReview(review)
	return &hydrated, nil
}

func (r *ReviewRepository) Create(_ context.Context, review *domain.Review) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	review.ID = newID()
	stored := *review
	stored.User = domain.UserSummary{}
	stored.PhotoURLs = cloneStrings(review.PhotoURLs)
	r.db.reviews[review.ID] = stored
	r.db.reviewOrd = append(r.db.reviewOrd, review.ID)
	return nil
}

func (r *ReviewRepository) Update(_ context.Context, review *domain.Review) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.reviews[review.ID]; !ok {
		return application.ErrNotFound
	}
	stored := *review
	stored.User = domain.UserSummary{}
	stored.PhotoURLs = cloneStrings(review.PhotoURLs)
	r.db.reviews[review.ID] = stored
	return nil
}

func (r *ReviewRepository) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.reviews[id]; !ok {
		return application.ErrNotFound
	}
	delete(r.db.reviews, id)
	r.db.reviewOrd = removeID(r.db.reviewOrd, id)
	return nil
}

func (db *DB) hydrateReview(review domain.Review) domain.Review {
	if user, ok := db.users[review.UserID]; ok {
		review.User = user.Summary()
	}
	review.PhotoURLs = cloneStrings(review.PhotoURLs)
	return review
}
