package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes は一意制約と検索用インデックスを作成する。起動時に一度呼ぶ。
func EnsureIndexes(ctx context.Context, db *mongo.Database, names Collections) error {
	specs := []struct {
		collection string
		models     []mongo.IndexModel
	}{
		{names.Users, []mongo.IndexModel{
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "kakaoId", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		}},
		{names.Bookings, []mongo.IndexModel{
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
		}},
		{names.Reviews, []mongo.IndexModel{
			{Keys: bson.D{{Key: "storeId", Value: 1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		}},
		{names.Stores, []mongo.IndexModel{
			{Keys: bson.D{{Key: "ownerId", Value: 1}}},
			{Keys: bson.D{{Key: "kindMenu", Value: 1}}},
		}},
		{names.Groups, []mongo.IndexModel{
			{Keys: bson.D{{Key: "memberIds", Value: 1}}},
		}},
		{names.Notices, []mongo.IndexModel{
			{Keys: bson.D{{Key: "name", Value: 1}}},
		}},
	}
	for _, spec := range specs {
		if _, err := db.Collection(spec.collection).Indexes().CreateMany(ctx, spec.models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", spec.collection, err)
		}
	}
	return nil
}
