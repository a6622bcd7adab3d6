package domain

import (
	"encoding/json"
	"strconv"
)

// NoReviews is the sentinel reported instead of a numeric value for unreviewed stores.
const NoReviews = "No Reviews"

const subRatingCount = 6

// Rating is the derived rating of a store. Valid is false when the store has no reviews.
type Rating struct {
	Value float64
	Valid bool
}

// AggregateRating computes round(sum of six sub-ratings / (6 * N), 1) over reviews.
func AggregateRating(reviews []Review) Rating {
	total := 0
	for _, review := range reviews {
		total += review.Total()
	}
	return RatingFromTotals(len(reviews), total)
}

// RatingFromTotals aggregates pre-summed review totals, as produced by storage queries.
func RatingFromTotals(count, total int) Rating {
	if count <= 0 {
		return Rating{}
	}
	return Rating{
		Value: roundOneDecimal(float64(total) / float64(subRatingCount*count)),
		Valid: true,
	}
}

// MarshalJSON renders the numeric rating or the NoReviews sentinel.
func (r Rating) MarshalJSON() ([]byte, error) {
	if !r.Valid {
		return json.Marshal(NoReviews)
	}
	return json.Marshal(r.Value)
}

// roundOneDecimal rounds the exact binary value to one decimal place, exact ties to even.
func roundOneDecimal(v float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return rounded
}
