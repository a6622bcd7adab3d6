package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Booking toggle messages.
const (
	MessageBookingAdded   = "Booking added"
	MessageBookingRemoved = "Booking removed"
)

type bookingService struct {
	bookings BookingRepository
	stores   StoreRepository
	users    UserRepository
}

// NewBookingService creates the favourites use-case service.
func NewBookingService(bookings BookingRepository, stores StoreRepository, users UserRepository) BookingService {
	return &bookingService{bookings: bookings, stores: stores, users: users}
}

func (s *bookingService) Get(ctx context.Context, principal Principal, page Page) (*BookingView, error) {
	if principal.UserID == "" {
		return nil, ErrAuthenticationFailed
	}
	booking, err := s.bookings.EnsureForUser(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("ensure booking: %w", err)
	}
	view := &BookingView{Booking: *booking, Stores: []StoreView{}}
	if user, err := s.users.FindByID(ctx, principal.UserID); err == nil {
		view.User = user.Summary()
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if len(booking.StoreIDs) == 0 {
		return view, nil
	}
	stores, err := s.stores.Query(ctx, StoreQuery{IDs: booking.StoreIDs}, page)
	if err != nil {
		return nil, err
	}
	view.Stores = buildStoreViews(principal, booking, stores)
	return view, nil
}

// Toggle flips every listed store. All stores are checked before any change is made.
func (s *bookingService) Toggle(ctx context.Context, principal Principal, storeIDs []string) ([]BookingToggle, error) {
	if principal.UserID == "" {
		return nil, ErrAuthenticationFailed
	}
	if len(storeIDs) == 0 {
		return nil, NewValidationError("store_pk", "this field is required")
	}
	for _, id := range storeIDs {
		if strings.TrimSpace(id) == "" {
			return nil, NewValidationError("store_pk", "Store not exist")
		}
		if _, err := s.stores.FindByID(ctx, id); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, NewValidationError("store_pk", "Store not exist")
			}
			return nil, err
		}
	}
	if _, err := s.bookings.EnsureForUser(ctx, principal.UserID); err != nil {
		return nil, fmt.Errorf("ensure booking: %w", err)
	}
	results := make([]BookingToggle, 0, len(storeIDs))
	for _, id := range storeIDs {
		liked, err := s.bookings.Toggle(ctx, principal.UserID, id)
		if err != nil {
			return nil, fmt.Errorf("toggle booking: %w", err)
		}
		message := MessageBookingRemoved
		if liked {
			message = MessageBookingAdded
		}
		results = append(results, BookingToggle{StoreID: id, IsLiked: liked, Message: message})
	}
	return results, nil
}
