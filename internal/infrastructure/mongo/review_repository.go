package mongo

import (
	"context"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReviewRepository implements application.ReviewRepository using MongoDB.
type ReviewRepository struct {
	collection *mongo.Collection
	users      string
}

func NewReviewRepository(db *mongo.Database, names Collections) *ReviewRepository {
	return &ReviewRepository{collection: db.Collection(names.Reviews), users: names.Users}
}

func (r *ReviewRepository) ListByStore(ctx context.Context, storeID string, page application.Page) ([]domain.Review, error) {
	oid, err := objectID(storeID)
	if err != nil {
		return []domain.Review{}, nil
	}
	return r.aggregate(ctx, bson.M{"storeId": oid}, page)
}

func (r *ReviewRepository) ListByUser(ctx context.Context, userID string, page application.Page) ([]domain.Review, error) {
	oid, err := objectID(userID)
	if err != nil {
		return []domain.Review{}, nil
	}
	return r.aggregate(ctx, bson.M{"userId": oid}, page)
}

func (r *ReviewRepository) FindByID(ctx context.Context, id string) (*domain.Review, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	reviews, err := r.aggregate(ctx, bson.M{"_id": oid}, application.FirstPage())
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, application.ErrNotFound
	}
	return &reviews[0], nil
}

func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	doc, err := buildReviewDocument(review)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return translateErr(err)
	}
	review.ID = doc.ID.Hex()
	return nil
}

func (r *ReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	oid, err := objectID(review.ID)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{
		"taste":       review.Taste,
		"atmosphere":  review.Atmosphere,
		"kindness":    review.Kindness,
		"cleanliness": review.Cleanliness,
		"parking":     review.Parking,
		"restroom":    review.Restroom,
		"description": review.Description,
		"photoURLs":   append([]string{}, review.PhotoURLs...),
		"updatedAt":   review.UpdatedAt,
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

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
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
	return nil
}

func (r *ReviewRepository) aggregate(ctx context.Context, match bson.M, page application.Page) ([]domain.Review, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
		{{Key: "$skip", Value: int64(page.Offset())}},
		{{Key: "$limit", Value: int64(page.Limit())}},
		{{Key: "$lookup", Value: bson.M{
			"from":         r.users,
			"localField":   "userId",
			"foreignField": "_id",
			"as":           "user",
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reviews := make([]domain.Review, 0)
	for cursor.Next(ctx) {
		var doc ReviewAggregateDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		reviews = append(reviews, mapReviewAggregate(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return reviews, nil
}

func buildReviewDocument(review *domain.Review) (ReviewDocument, error) {
	userID, err := objectID(review.UserID)
	if err != nil {
		return ReviewDocument{}, err
	}
	doc := ReviewDocument{
		UserID:      userID,
		Taste:       review.Taste,
		Atmosphere:  review.Atmosphere,
		Kindness:    review.Kindness,
		Cleanliness: review.Cleanliness,
		Parking:     review.Parking,
		Restroom:    review.Restroom,
		Description: review.Description,
		PhotoURLs:   append([]string{}, review.PhotoURLs...),
		CreatedAt:   review.CreatedAt,
		UpdatedAt:   review.UpdatedAt,
	}
	if review.StoreID != "" {
		storeID, err := objectID(review.StoreID)
		if err != nil {
			return ReviewDocument{}, err
		}
		doc.StoreID = &storeID
	}
	return doc, nil
}

func mapReviewAggregate(doc ReviewAggregateDocument) domain.Review {
	review := domain.Review{
		ID:          doc.ID.Hex(),
		UserID:      doc.UserID.Hex(),
		Taste:       doc.Taste,
		Atmosphere:  doc.Atmosphere,
		Kindness:    doc.Kindness,
		Cleanliness: doc.Cleanliness,
		Parking:     doc.Parking,
		Restroom:    doc.Restroom,
		Description: doc.Description,
		PhotoURLs:   append([]string{}, doc.PhotoURLs...),
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
	if doc.StoreID != nil {
		review.StoreID = doc.StoreID.Hex()
	}
	if len(doc.User) > 0 {
		review.User = mapUserDocument(doc.User[0]).Summary()
	}
	return review
}
