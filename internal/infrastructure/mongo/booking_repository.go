package mongo

import (
	"context"
	"time"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BookingRepository implements application.BookingRepository using MongoDB.
// userId に一意インデックスがあるため、ユーザーごとに一件に限られる。
type BookingRepository struct {
	collection *mongo.Collection
	users      *mongo.Collection
}

func NewBookingRepository(db *mongo.Database, names Collections) *BookingRepository {
	return &BookingRepository{collection: db.Collection(names.Bookings), users: db.Collection(names.Users)}
}

// EnsureForUser は upsert でお気に入りリストを取得または作成する。
func (r *BookingRepository) EnsureForUser(ctx context.Context, userID string) (*domain.Booking, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	name := ""
	var user UserDocument
	if err := r.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err == nil {
		name = user.Username
	}

	now := time.Now().UTC()
	update := bson.M{"$setOnInsert": bson.M{
		"_id":       primitive.NewObjectID(),
		"name":      name,
		"storeIds":  bson.A{},
		"createdAt": now,
		"updatedAt": now,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc BookingDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"userId": oid}, update, opts).Decode(&doc)
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent upsert won the race; the document exists now.
		err = r.collection.FindOne(ctx, bson.M{"userId": oid}).Decode(&doc)
	}
	if err != nil {
		return nil, translateErr(err)
	}
	booking := mapBookingDocument(doc)
	return &booking, nil
}

func (r *BookingRepository) FindByUser(ctx context.Context, userID string) (*domain.Booking, error) {
	oid, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	var doc BookingDocument
	if err := r.collection.FindOne(ctx, bson.M{"userId": oid}).Decode(&doc); err != nil {
		return nil, translateErr(err)
	}
	booking := mapBookingDocument(doc)
	return &booking, nil
}

// Toggle は条件付き更新で追加か削除のどちらか一方だけを適用する。
func (r *BookingRepository) Toggle(ctx context.Context, userID, storeID string) (bool, error) {
	oid, err := objectID(userID)
	if err != nil {
		return false, err
	}
	sid, err := objectID(storeID)
	if err != nil {
		return false, err
	}
	return toggleMember(ctx, r.collection, bson.M{"userId": oid}, "storeIds", sid)
}

// toggleMember adds value to the array field when absent and removes it when present.
func toggleMember(ctx context.Context, collection *mongo.Collection, filter bson.M, field string, value primitive.ObjectID) (bool, error) {
	now := time.Now().UTC()
	for attempt := 0; attempt < 3; attempt++ {
		addFilter := bson.M{field: bson.M{"$ne": value}}
		for k, v := range filter {
			addFilter[k] = v
		}
		added, err := collection.UpdateOne(ctx, addFilter, bson.M{
			"$push": bson.M{field: value},
			"$set":  bson.M{"updatedAt": now},
		})
		if err != nil {
			return false, err
		}
		if added.ModifiedCount > 0 {
			return true, nil
		}

		removeFilter := bson.M{field: value}
		for k, v := range filter {
			removeFilter[k] = v
		}
		removed, err := collection.UpdateOne(ctx, removeFilter, bson.M{
			"$pull": bson.M{field: value},
			"$set":  bson.M{"updatedAt": now},
		})
		if err != nil {
			return false, err
		}
		if removed.ModifiedCount > 0 {
			return false, nil
		}

		count, err := collection.CountDocuments(ctx, filter)
		if err != nil {
			return false, err
		}
		if count == 0 {
			return false, application.ErrNotFound
		}
	}
	return false, application.ErrConflict
}

func mapBookingDocument(doc BookingDocument) domain.Booking {
	return domain.Booking{
		ID:        doc.ID.Hex(),
		UserID:    doc.UserID.Hex(),
		Name:      doc.Name,
		StoreIDs:  hexIDs(doc.StoreIDs),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
