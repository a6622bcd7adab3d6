package domain

import (
	"encoding/json"
	"testing"
)

func TestAggregateRatingNoReviews(t *testing.T) {
	got := AggregateRating(nil)
	if got.Valid {
		t.Fatalf("expected invalid rating for empty reviews, got %+v", got)
	}
	raw, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"No Reviews"` {
		t.Fatalf("unexpected json: %s", raw)
	}
}

func TestAggregateRating(t *testing.T) {
	cases := []struct {
		name    string
		reviews []Review
		want    float64
	}{
		{
			name:    "single review all fives",
			reviews: []Review{{Taste: 5, Atmosphere: 5, Kindness: 5, Cleanliness: 5, Parking: 5, Restroom: 5}},
			want:    5.0,
		},
		{
			name: "two reviews",
			reviews: []Review{
				{Taste: 5, Atmosphere: 4, Kindness: 3, Cleanliness: 2, Parking: 1, Restroom: 0},
				{Taste: 4, Atmosphere: 4, Kindness: 4, Cleanliness: 4, Parking: 4, Restroom: 4},
			},
			// (15 + 24) / 12 = 3.25, an exact tie
			want: 3.2,
		},
		{
			name:    "all zero",
			reviews: []Review{{}},
			want:    0,
		},
		{
			name: "rounds down",
			reviews: []Review{
				{Taste: 1, Atmosphere: 1, Kindness: 1, Cleanliness: 1, Parking: 1, Restroom: 0},
			},
			// 5 / 6 = 0.833
			want: 0.8,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AggregateRating(tc.reviews)
			if !got.Valid {
				t.Fatalf("expected valid rating")
			}
			if got.Value != tc.want {
				t.Fatalf("unexpected rating: got %v want %v", got.Value, tc.want)
			}
		})
	}
}

func TestRatingFromTotalsRoundsLikeDecimal(t *testing.T) {
	cases := []struct {
		count, total int
		want         float64
	}{
		{count: 2, total: 27, want: 2.2},  // 2.25 exactly, ties to even
		{count: 2, total: 3, want: 0.2},   // 0.25 exactly
		{count: 2, total: 33, want: 2.8},  // 2.75 exactly, ties to even
		{count: 10, total: 9, want: 0.1},  // 0.15 is stored just below the tie
		{count: 10, total: 21, want: 0.3}, // 0.35 likewise
		{count: 1, total: 29, want: 4.8},
		{count: 3, total: 50, want: 2.8},
	}
	for _, tc := range cases {
		got := RatingFromTotals(tc.count, tc.total)
		if !got.Valid || got.Value != tc.want {
			t.Fatalf("RatingFromTotals(%d, %d) = %+v, want %v", tc.count, tc.total, got, tc.want)
		}
	}
}

func TestRatingFromTotalsMatchesAggregate(t *testing.T) {
	reviews := []Review{
		{Taste: 3, Atmosphere: 2, Kindness: 5, Cleanliness: 4, Parking: 1, Restroom: 2},
		{Taste: 5, Atmosphere: 5, Kindness: 2, Cleanliness: 3, Parking: 0, Restroom: 4},
		{Taste: 1, Atmosphere: 1, Kindness: 1, Cleanliness: 1, Parking: 1, Restroom: 1},
	}
	total := 0
	for _, r := range reviews {
		total += r.Total()
	}
	if got, want := RatingFromTotals(len(reviews), total), AggregateRating(reviews); got != want {
		t.Fatalf("totals and reviews disagree: %+v vs %+v", got, want)
	}
	raw, _ := json.Marshal(RatingFromTotals(1, 21))
	if string(raw) != "3.5" {
		t.Fatalf("unexpected json: %s", raw)
	}
}

func TestNewMenuKind(t *testing.T) {
	if k, err := NewMenuKind(" cafe "); err != nil || k != MenuKindCafe {
		t.Fatalf("cafe: got %q err %v", k, err)
	}
	if _, err := NewMenuKind("ect"); err == nil {
		t.Fatal("expected ect to be rejected on write")
	}
	if _, err := NewMenuKind(""); err == nil {
		t.Fatal("expected empty kind to be rejected")
	}
}

func TestNewDetailKind(t *testing.T) {
	if k, err := NewDetailKind("korean"); err != nil || k != DetailKorean {
		t.Fatalf("korean: got %q err %v", k, err)
	}
	if k, err := NewDetailKind(""); err != nil || k != "" {
		t.Fatalf("empty: got %q err %v", k, err)
	}
	if _, err := NewDetailKind("THAI"); err == nil {
		t.Fatal("expected unsupported detail kind to fail")
	}
}
