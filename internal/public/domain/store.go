package domain

import "time"

// Store represents a listed restaurant or cafe.
type Store struct {
	ID          string
	Name        string
	Description string
	KindMenu    MenuKind
	KindDetail  DetailKind
	PetFriendly bool
	City        string
	OwnerID     string
	Owner       UserSummary
	SellListIDs []string
	SellList    []SellList
	PhotoURLs   []string
	Stats       StoreStats
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// StoreStats carries review aggregates derived at read time.
type StoreStats struct {
	ReviewCount int
	RatingTotal int
}

// Rating returns the aggregated rating of the store.
func (s StoreStats) Rating() Rating {
	return RatingFromTotals(s.ReviewCount, s.RatingTotal)
}

// SellList is a menu item or offering that can be attached to many stores.
type SellList struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsOwnedBy reports whether the given user id owns the store.
func (s Store) IsOwnedBy(userID string) bool {
	return userID != "" && s.OwnerID == userID
}
