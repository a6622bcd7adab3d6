package mongo

import (
	"reflect"
	"testing"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func mustQuery(t *testing.T, keyword string, types ...string) application.StoreQuery {
	t.Helper()
	query, ok := application.BuildStoreQuery(keyword, types)
	if !ok {
		t.Fatalf("BuildStoreQuery(%q, %v) rejected", keyword, types)
	}
	return query
}

func TestBuildStoreMatch(t *testing.T) {
	owner := primitive.NewObjectID()
	storeA := primitive.NewObjectID()
	storeB := primitive.NewObjectID()

	tests := []struct {
		name  string
		query application.StoreQuery
		want  bson.M
	}{
		{
			name:  "no filters",
			query: mustQuery(t, ""),
			want:  bson.M{},
		},
		{
			name:  "single kind",
			query: mustQuery(t, "", "cafe"),
			want:  bson.M{"kindMenu": "cafe"},
		},
		{
			name:  "cafe and food are both required",
			query: mustQuery(t, "", "cafe", "food"),
			want: bson.M{"$and": []bson.M{
				{"kindMenu": "cafe"},
				{"kindMenu": "food"},
			}},
		},
		{
			name:  "ect compares the literal kind",
			query: mustQuery(t, "", "ect"),
			want:  bson.M{"kindMenu": "ect"},
		},
		{
			name:  "sort types add no clause",
			query: mustQuery(t, "", "rate", "reviews"),
			want:  bson.M{},
		},
		{
			name:  "keyword is escaped and case-insensitive",
			query: mustQuery(t, "a.b(c)*"),
			want:  bson.M{"name": primitive.Regex{Pattern: `a\.b\(c\)\*`, Options: "i"}},
		},
		{
			name:  "keyword keeps surrounding spaces",
			query: mustQuery(t, " blue"),
			want:  bson.M{"name": primitive.Regex{Pattern: " blue", Options: "i"}},
		},
		{
			name:  "keyword with kind",
			query: mustQuery(t, "bar", "food"),
			want: bson.M{"$and": []bson.M{
				{"name": primitive.Regex{Pattern: "bar", Options: "i"}},
				{"kindMenu": "food"},
			}},
		},
		{
			name:  "owner",
			query: application.StoreQuery{OwnerID: owner.Hex()},
			want:  bson.M{"ownerId": owner},
		},
		{
			name:  "malformed owner matches nothing",
			query: application.StoreQuery{OwnerID: "not-an-id"},
			want:  bson.M{"ownerId": primitive.NilObjectID},
		},
		{
			name:  "ids drop malformed entries",
			query: application.StoreQuery{IDs: []string{storeA.Hex(), "bogus", storeB.Hex()}},
			want:  bson.M{"_id": bson.M{"$in": []primitive.ObjectID{storeA, storeB}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildStoreMatch(tt.query)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("match = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestStoreSort(t *testing.T) {
	tests := []struct {
		name  string
		types []string
		want  bson.D
	}{
		{
			name: "insertion order by default",
			want: bson.D{{Key: "_id", Value: 1}},
		},
		{
			name:  "kind filters keep insertion order",
			types: []string{"cafe"},
			want:  bson.D{{Key: "_id", Value: 1}},
		},
		{
			name:  "rate puts rated stores first",
			types: []string{"rate"},
			want:  bson.D{{Key: "hasReviews", Value: -1}, {Key: "avgRating", Value: -1}, {Key: "_id", Value: 1}},
		},
		{
			name:  "reviews by count",
			types: []string{"reviews"},
			want:  bson.D{{Key: "reviewCount", Value: -1}, {Key: "_id", Value: 1}},
		},
		{
			name:  "rate wins over reviews",
			types: []string{"reviews", "rate"},
			want:  bson.D{{Key: "hasReviews", Value: -1}, {Key: "avgRating", Value: -1}, {Key: "_id", Value: 1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := storeSort(mustQuery(t, "", tt.types...).Sort)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("sort = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestPipelineStages(t *testing.T) {
	repo := &StoreRepository{names: Collections{Reviews: "reviews", Users: "users", SellLists: "sell_lists"}}
	pipeline := repo.pipeline(bson.M{}, storeSort(application.SortRatingDesc), 20, 10)

	stages := make([]string, 0, len(pipeline))
	for _, stage := range pipeline {
		stages = append(stages, stage[0].Key)
	}
	want := []string{"$match", "$lookup", "$addFields", "$addFields", "$sort", "$skip", "$limit", "$lookup", "$lookup", "$project"}
	if !reflect.DeepEqual(stages, want) {
		t.Fatalf("stages = %v, want %v", stages, want)
	}
	if skip := pipeline[5][0].Value; skip != int64(20) {
		t.Fatalf("skip = %v", skip)
	}
	if limit := pipeline[6][0].Value; limit != int64(10) {
		t.Fatalf("limit = %v", limit)
	}
}

func TestBuildNoticeFilter(t *testing.T) {
	if got := buildNoticeFilter(""); len(got) != 0 {
		t.Fatalf("empty keyword filter = %v", got)
	}
	want := bson.M{"name": primitive.Regex{Pattern: `1\+1`, Options: "i"}}
	if got := buildNoticeFilter("1+1"); !reflect.DeepEqual(got, want) {
		t.Fatalf("filter = %#v, want %#v", got, want)
	}
}
