package domain

import "time"

// MaxSubRating is the upper bound of each review sub-rating.
const MaxSubRating = 5

// Review is a multi-criteria review of a store. StoreID is empty once the store is deleted.
type Review struct {
	ID          string
	UserID      string
	User        UserSummary
	StoreID     string
	Taste       int
	Atmosphere  int
	Kindness    int
	Cleanliness int
	Parking     int
	Restroom    int
	Description string
	PhotoURLs   []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Total sums the six sub-ratings.
func (r Review) Total() int {
	return r.Taste + r.Atmosphere + r.Kindness + r.Cleanliness + r.Parking + r.Restroom
}

// Average returns the mean of the six sub-ratings rounded to one decimal.
func (r Review) Average() float64 {
	return roundOneDecimal(float64(r.Total()) / subRatingCount)
}
