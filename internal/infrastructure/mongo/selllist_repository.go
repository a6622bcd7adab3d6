package mongo

import (
	"context"
	"fmt"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SellListRepository implements application.SellListRepository using MongoDB.
type SellListRepository struct {
	collection *mongo.Collection
	stores     *mongo.Collection
}

func NewSellListRepository(db *mongo.Database, names Collections) *SellListRepository {
	return &SellListRepository{collection: db.Collection(names.SellLists), stores: db.Collection(names.Stores)}
}

func (r *SellListRepository) List(ctx context.Context) ([]domain.SellList, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]domain.SellList, 0)
	for cursor.Next(ctx) {
		var doc SellListDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		items = append(items, mapSellListDocument(doc))
	}
	return items, cursor.Err()
}

func (r *SellListRepository) FindByID(ctx context.Context, id string) (*domain.SellList, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc SellListDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translateErr(err)
	}
	item := mapSellListDocument(doc)
	return &item, nil
}

func (r *SellListRepository) Create(ctx context.Context, item *domain.SellList) error {
	doc := SellListDocument{
		ID:          primitive.NewObjectID(),
		Name:        item.Name,
		Description: item.Description,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return translateErr(err)
	}
	item.ID = doc.ID.Hex()
	return nil
}

func (r *SellListRepository) Update(ctx context.Context, item *domain.SellList) error {
	oid, err := objectID(item.ID)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{
		"name":        item.Name,
		"description": item.Description,
		"updatedAt":   item.UpdatedAt,
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return translateErr(err)
	}
	if result.MatchedCount == 0 {
		return application.ErrNotFound
	}
	return nil
}

// Delete は販売リスト項目を削除し、全店舗の sellListIds から外す。
func (r *SellListRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return translateErr(err)
	}
	if result.DeletedCount == 0 {
		return application.ErrNotFound
	}
	if _, err := r.stores.UpdateMany(ctx, bson.M{"sellListIds": oid}, bson.M{"$pull": bson.M{"sellListIds": oid}}); err != nil {
		return fmt.Errorf("detach stores: %w", err)
	}
	return nil
}

func mapSellListDocument(doc SellListDocument) domain.SellList {
	return domain.SellList{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Description: doc.Description,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}
