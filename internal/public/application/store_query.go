package application

import (
	"strings"

	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

// Listing type values accepted by the store listing.
const (
	TypeCafe    = "cafe"
	TypeFood    = "food"
	TypeEtc     = "ect"
	TypeRate    = "rate"
	TypeReviews = "reviews"
)

// StoreSort selects the ordering of a store listing.
type StoreSort int

const (
	// SortDefault keeps insertion order.
	SortDefault StoreSort = iota
	// SortRatingDesc orders by average rating, unrated stores last.
	SortRatingDesc
	// SortReviewCountDesc orders by number of reviews.
	SortReviewCountDesc
)

// StoreQuery is the storage-independent description of a store listing.
// Each storage backend executes it with its own query language.
type StoreQuery struct {
	Keyword string
	// MenuKinds are ANDed equality conditions on the menu kind.
	MenuKinds           []domain.MenuKind
	AnnotateRating      bool
	AnnotateReviewCount bool
	Sort                StoreSort
	// OwnerID restricts the listing to one owner when set.
	OwnerID string
	// IDs restricts the listing to the given stores when non-empty.
	IDs []string
}

// Matches evaluates the filter part of the query against a single store.
func (q StoreQuery) Matches(store domain.Store) bool {
	if q.OwnerID != "" && store.OwnerID != q.OwnerID {
		return false
	}
	if len(q.IDs) > 0 && !containsID(q.IDs, store.ID) {
		return false
	}
	if !ContainsKeyword(store.Name, q.Keyword) {
		return false
	}
	for _, kind := range q.MenuKinds {
		if store.KindMenu != kind {
			return false
		}
	}
	return true
}

// ContainsKeyword reports whether name contains keyword, ignoring case.
// An empty keyword matches everything.
func ContainsKeyword(name, keyword string) bool {
	return keyword == "" || strings.Contains(strings.ToLower(name), strings.ToLower(keyword))
}

// BuildStoreQuery translates the listing parameters into a StoreQuery.
// ok is false when any type value is unknown, in which case the listing is empty.
func BuildStoreQuery(keyword string, types []string) (StoreQuery, bool) {
	query := StoreQuery{Keyword: keyword}
	for _, t := range types {
		switch t {
		case TypeCafe:
			query.MenuKinds = append(query.MenuKinds, domain.MenuKindCafe)
		case TypeFood:
			query.MenuKinds = append(query.MenuKinds, domain.MenuKindFood)
		case TypeEtc:
			query.MenuKinds = append(query.MenuKinds, domain.MenuKindEtc)
		case TypeRate:
			query.AnnotateRating = true
		case TypeReviews:
			query.AnnotateReviewCount = true
		default:
			return StoreQuery{}, false
		}
	}
	switch {
	case query.AnnotateRating:
		query.Sort = SortRatingDesc
	case query.AnnotateReviewCount:
		query.Sort = SortReviewCountDesc
	}
	return query, true
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
