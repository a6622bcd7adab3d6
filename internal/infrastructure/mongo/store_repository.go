package mongo

import (
	"context"
	"fmt"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// StoreRepository implements application.StoreRepository using MongoDB.
type StoreRepository struct {
	collection *mongo.Collection
	reviews    *mongo.Collection
	bookings   *mongo.Collection
	groups     *mongo.Collection
	names      Collections
}

// NewStoreRepository creates a new Mongo-backed store repository.
func NewStoreRepository(db *mongo.Database, names Collections) *StoreRepository {
	return &StoreRepository{
		collection: db.Collection(names.Stores),
		reviews:    db.Collection(names.Reviews),
		bookings:   db.Collection(names.Bookings),
		groups:     db.Collection(names.Groups),
		names:      names,
	}
}

// Query は StoreQuery を集計パイプラインに変換して実行する。
func (r *StoreRepository) Query(ctx context.Context, query application.StoreQuery, page application.Page) ([]domain.Store, error) {
	pipeline := r.pipeline(buildStoreMatch(query), storeSort(query.Sort), int64(page.Offset()), int64(page.Limit()))
	return r.aggregate(ctx, pipeline)
}

// FindByID returns a single store with owner, sell list and review stats.
func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	stores, err := r.aggregate(ctx, r.pipeline(bson.M{"_id": oid}, bson.D{{Key: "_id", Value: 1}}, 0, 1))
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, application.ErrNotFound
	}
	return &stores[0], nil
}

func (r *StoreRepository) Create(ctx context.Context, store *domain.Store) error {
	doc, err := buildStoreDocument(store)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return translateErr(err)
	}
	store.ID = doc.ID.Hex()
	return nil
}

func (r *StoreRepository) Update(ctx context.Context, store *domain.Store) error {
	oid, err := objectID(store.ID)
	if err != nil {
		return err
	}
	doc, err := buildStoreDocument(store)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{
		"name":        doc.Name,
		"description": doc.Description,
		"kindMenu":    doc.KindMenu,
		"kindDetail":  doc.KindDetail,
		"petFriendly": doc.PetFriendly,
		"city":        doc.City,
		"sellListIds": doc.SellListIDs,
		"photoURLs":   doc.PhotoURLs,
		"updatedAt":   doc.UpdatedAt,
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

// Delete は店舗を削除し、レビューの storeId を null にしてお気に入りとグループから外す。
func (r *StoreRepository) Delete(ctx context.Context, id string) error {
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
	if _, err := r.reviews.UpdateMany(ctx, bson.M{"storeId": oid}, bson.M{"$set": bson.M{"storeId": nil}}); err != nil {
		return fmt.Errorf("detach reviews: %w", err)
	}
	pull := bson.M{"$pull": bson.M{"storeIds": oid}}
	if _, err := r.bookings.UpdateMany(ctx, bson.M{"storeIds": oid}, pull); err != nil {
		return fmt.Errorf("detach bookings: %w", err)
	}
	if _, err := r.groups.UpdateMany(ctx, bson.M{"storeIds": oid}, pull); err != nil {
		return fmt.Errorf("detach groups: %w", err)
	}
	return nil
}

func (r *StoreRepository) AddSellList(ctx context.Context, storeID, sellListID string) error {
	oid, err := objectID(storeID)
	if err != nil {
		return err
	}
	itemID, err := objectID(sellListID)
	if err != nil {
		return err
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$addToSet": bson.M{"sellListIds": itemID}})
	if err != nil {
		return translateErr(err)
	}
	if result.MatchedCount == 0 {
		return application.ErrNotFound
	}
	return nil
}

func (r *StoreRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]domain.Store, error) {
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stores := make([]domain.Store, 0)
	for cursor.Next(ctx) {
		var doc StoreAggregateDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		stores = append(stores, mapStoreAggregate(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return stores, nil
}

// pipeline は絞り込み → レビュー集計 → 並び替え → ページング → 結合 の順で組み立てる。
func (r *StoreRepository) pipeline(match bson.M, sortSpec bson.D, skip, limit int64) mongo.Pipeline {
	ratingSum := bson.A{"$taste", "$atmosphere", "$kindness", "$cleanliness", "$parking", "$restroom"}
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$lookup", Value: bson.M{
			"from": r.names.Reviews,
			"let":  bson.M{"sid": "$_id"},
			"pipeline": bson.A{
				bson.M{"$match": bson.M{"$expr": bson.M{"$eq": bson.A{"$storeId", "$$sid"}}}},
				bson.M{"$group": bson.M{
					"_id":   nil,
					"count": bson.M{"$sum": 1},
					"total": bson.M{"$sum": bson.M{"$add": ratingSum}},
				}},
			},
			"as": "reviewStats",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"reviewCount": bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$reviewStats.count", 0}}, 0}},
			"ratingTotal": bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$reviewStats.total", 0}}, 0}},
		}}},
		{{Key: "$addFields", Value: bson.M{
			"hasReviews": bson.M{"$gt": bson.A{"$reviewCount", 0}},
			"avgRating": bson.M{"$cond": bson.A{
				bson.M{"$gt": bson.A{"$reviewCount", 0}},
				bson.M{"$divide": bson.A{"$ratingTotal", bson.M{"$multiply": bson.A{"$reviewCount", 6}}}},
				nil,
			}},
		}}},
		{{Key: "$sort", Value: sortSpec}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         r.names.Users,
			"localField":   "ownerId",
			"foreignField": "_id",
			"as":           "owner",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         r.names.SellLists,
			"localField":   "sellListIds",
			"foreignField": "_id",
			"as":           "sellList",
		}}},
		{{Key: "$project", Value: bson.M{"reviewStats": 0}}},
	}
}

func buildStoreMatch(query application.StoreQuery) bson.M {
	clauses := make([]bson.M, 0)
	if query.OwnerID != "" {
		oid, err := primitive.ObjectIDFromHex(query.OwnerID)
		if err != nil {
			oid = primitive.NilObjectID
		}
		clauses = append(clauses, bson.M{"ownerId": oid})
	}
	if len(query.IDs) > 0 {
		clauses = append(clauses, bson.M{"_id": bson.M{"$in": objectIDs(query.IDs)}})
	}
	if query.Keyword != "" {
		clauses = append(clauses, bson.M{"name": keywordRegex(query.Keyword)})
	}
	for _, kind := range query.MenuKinds {
		clauses = append(clauses, bson.M{"kindMenu": string(kind)})
	}
	switch len(clauses) {
	case 0:
		return bson.M{}
	case 1:
		return clauses[0]
	}
	return bson.M{"$and": clauses}
}

func storeSort(order application.StoreSort) bson.D {
	switch order {
	case application.SortRatingDesc:
		return bson.D{{Key: "hasReviews", Value: -1}, {Key: "avgRating", Value: -1}, {Key: "_id", Value: 1}}
	case application.SortReviewCountDesc:
		return bson.D{{Key: "reviewCount", Value: -1}, {Key: "_id", Value: 1}}
	}
	return bson.D{{Key: "_id", Value: 1}}
}

func buildStoreDocument(store *domain.Store) (StoreDocument, error) {
	ownerID, err := objectID(store.OwnerID)
	if err != nil {
		return StoreDocument{}, fmt.Errorf("owner id: %w", err)
	}
	return StoreDocument{
		Name:        store.Name,
		Description: store.Description,
		KindMenu:    store.KindMenu.String(),
		KindDetail:  store.KindDetail.String(),
		PetFriendly: store.PetFriendly,
		City:        store.City,
		OwnerID:     ownerID,
		SellListIDs: objectIDs(store.SellListIDs),
		PhotoURLs:   append([]string{}, store.PhotoURLs...),
		CreatedAt:   store.CreatedAt,
		UpdatedAt:   store.UpdatedAt,
	}, nil
}

func mapStoreAggregate(doc StoreAggregateDocument) domain.Store {
	store := domain.Store{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Description: doc.Description,
		KindMenu:    domain.MenuKind(doc.KindMenu),
		KindDetail:  domain.DetailKind(doc.KindDetail),
		PetFriendly: doc.PetFriendly,
		City:        doc.City,
		OwnerID:     doc.OwnerID.Hex(),
		SellListIDs: hexIDs(doc.SellListIDs),
		PhotoURLs:   append([]string{}, doc.PhotoURLs...),
		Stats: domain.StoreStats{
			ReviewCount: doc.ReviewCount,
			RatingTotal: doc.RatingTotal,
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if len(doc.Owner) > 0 {
		store.Owner = mapUserDocument(doc.Owner[0]).Summary()
	}
	// $lookup does not keep the order of sellListIds.
	items := make(map[primitive.ObjectID]SellListDocument, len(doc.SellList))
	for _, item := range doc.SellList {
		items[item.ID] = item
	}
	store.SellList = make([]domain.SellList, 0, len(doc.SellListIDs))
	for _, id := range doc.SellListIDs {
		if item, ok := items[id]; ok {
			store.SellList = append(store.SellList, mapSellListDocument(item))
		}
	}
	return store
}
