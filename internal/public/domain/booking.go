package domain

import "time"

// Booking is a per-user favourites list. There is at most one per user.
type Booking struct {
	ID        string
	UserID    string
	Name      string
	StoreIDs  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contains reports whether storeID is bookmarked.
func (b Booking) Contains(storeID string) bool {
	for _, id := range b.StoreIDs {
		if id == storeID {
			return true
		}
	}
	return false
}

// Group is a named collection of members sharing a list of stores.
type Group struct {
	ID        string
	Name      string
	OwnerID   string
	MemberIDs []string
	StoreIDs  []string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasMember reports whether userID is the owner or a member of the group.
func (g Group) HasMember(userID string) bool {
	if userID == "" {
		return false
	}
	if g.OwnerID == userID {
		return true
	}
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// HasStore reports whether the shared list contains storeID.
func (g Group) HasStore(storeID string) bool {
	for _, id := range g.StoreIDs {
		if id == storeID {
			return true
		}
	}
	return false
}
