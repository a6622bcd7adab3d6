package memory

import (
	"context"
	"time"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

// BookingRepository implements application.BookingRepository.
type BookingRepository struct {
	db *DB
}

func NewBookingRepository(db *DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) EnsureForUser(_ context.Context, userID string) (*domain.Booking, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	booking, ok := r.db.bookings[userID]
	if !ok {
		now := time.Now().UTC()
		booking = domain.Booking{
			ID:        newID(),
			UserID:    userID,
			StoreIDs:  []string{},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if user, found := r.db.users[userID]; found {
			booking.Name = user.Username
		}
		r.db.bookings[userID] = booking
	}
	booking.StoreIDs = cloneStrings(booking.StoreIDs)
	return &booking, nil
}

func (r *BookingRepository) FindByUser(_ context.Context, userID string) (*domain.Booking, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	booking, ok := r.db.bookings[userID]
	if !ok {
		return nil, application.ErrNotFound
	}
	booking.StoreIDs = cloneStrings(booking.StoreIDs)
	return &booking, nil
}

func (r *BookingRepository) Toggle(_ context.Context, userID, storeID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	booking, ok := r.db.bookings[userID]
	if !ok {
		return false, application.ErrNotFound
	}
	liked := !booking.Contains(storeID)
	if liked {
		booking.StoreIDs = append(cloneStrings(booking.StoreIDs), storeID)
	} else {
		booking.StoreIDs = removeID(booking.StoreIDs, storeID)
	}
	booking.UpdatedAt = time.Now().UTC()
	r.db.bookings[userID] = booking
	return liked, nil
}
