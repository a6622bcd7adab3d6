package application

import (
	"testing"

	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

func TestBuildStoreQuery(t *testing.T) {
	tests := []struct {
		name      string
		types     []string
		wantOK    bool
		wantKinds int
		wantSort  StoreSort
	}{
		{name: "no types", wantOK: true},
		{name: "cafe", types: []string{"cafe"}, wantOK: true, wantKinds: 1},
		{name: "cafe and food", types: []string{"cafe", "food"}, wantOK: true, wantKinds: 2},
		{name: "rate", types: []string{"rate"}, wantOK: true, wantSort: SortRatingDesc},
		{name: "reviews", types: []string{"reviews"}, wantOK: true, wantSort: SortReviewCountDesc},
		{name: "reviews then rate", types: []string{"reviews", "rate"}, wantOK: true, wantSort: SortRatingDesc},
		{name: "unknown", types: []string{"cafe", "pizza"}, wantOK: false},
		{name: "case sensitive", types: []string{"Cafe"}, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, ok := BuildStoreQuery("", tt.types)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if len(query.MenuKinds) != tt.wantKinds {
				t.Fatalf("menu kinds = %v", query.MenuKinds)
			}
			if query.Sort != tt.wantSort {
				t.Fatalf("sort = %v, want %v", query.Sort, tt.wantSort)
			}
		})
	}
}

func TestBuildStoreQueryAnnotatesBoth(t *testing.T) {
	query, ok := BuildStoreQuery("  noodle ", []string{"rate", "reviews"})
	if !ok || !query.AnnotateRating || !query.AnnotateReviewCount {
		t.Fatalf("query = %+v ok = %v", query, ok)
	}
	if query.Keyword != "  noodle " {
		t.Fatalf("keyword should be kept verbatim, got %q", query.Keyword)
	}
}

func TestStoreQueryMatches(t *testing.T) {
	cafe := domain.Store{ID: "1", Name: "Blue Bottle", KindMenu: domain.MenuKindCafe, OwnerID: "u1"}

	tests := []struct {
		name  string
		query StoreQuery
		want  bool
	}{
		{"empty", StoreQuery{}, true},
		{"keyword case-insensitive", StoreQuery{Keyword: "BOTTLE"}, true},
		{"keyword miss", StoreQuery{Keyword: "ramen"}, false},
		{"keyword spans the space", StoreQuery{Keyword: "E B"}, true},
		{"leading space is significant", StoreQuery{Keyword: " blue"}, false},
		{"kind", StoreQuery{MenuKinds: []domain.MenuKind{domain.MenuKindCafe}}, true},
		{"kinds are conjunctive", StoreQuery{MenuKinds: []domain.MenuKind{domain.MenuKindCafe, domain.MenuKindFood}}, false},
		{"ect never matches", StoreQuery{MenuKinds: []domain.MenuKind{domain.MenuKindEtc}}, false},
		{"owner", StoreQuery{OwnerID: "u2"}, false},
		{"ids", StoreQuery{IDs: []string{"2", "1"}}, true},
	}
	for _, tt := range tests {
		if got := tt.query.Matches(cafe); got != tt.want {
			t.Errorf("%s: Matches = %v, want %v", tt.name, got, tt.want)
		}
	}
}
