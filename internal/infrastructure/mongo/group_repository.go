package mongo

import (
	"context"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GroupRepository implements application.GroupRepository using MongoDB.
type GroupRepository struct {
	collection *mongo.Collection
}

func NewGroupRepository(db *mongo.Database, names Collections) *GroupRepository {
	return &GroupRepository{collection: db.Collection(names.Groups)}
}

func (r *GroupRepository) ListForMember(ctx context.Context, userID string, page application.Page) ([]domain.Group, error) {
	oid, err := objectID(userID)
	if err != nil {
		return []domain.Group{}, nil
	}
	filter := bson.M{"$or": bson.A{bson.M{"ownerId": oid}, bson.M{"memberIds": oid}}}
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit()))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	groups := make([]domain.Group, 0)
	for cursor.Next(ctx) {
		var doc GroupDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		groups = append(groups, mapGroupDocument(doc))
	}
	return groups, cursor.Err()
}

func (r *GroupRepository) FindByID(ctx context.Context, id string) (*domain.Group, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc GroupDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translateErr(err)
	}
	group := mapGroupDocument(doc)
	return &group, nil
}

func (r *GroupRepository) Create(ctx context.Context, group *domain.Group) error {
	doc, err := buildGroupDocument(group)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return translateErr(err)
	}
	group.ID = doc.ID.Hex()
	return nil
}

func (r *GroupRepository) Update(ctx context.Context, group *domain.Group) error {
	oid, err := objectID(group.ID)
	if err != nil {
		return err
	}
	doc, err := buildGroupDocument(group)
	if err != nil {
		return err
	}
	update := bson.M{"$set": bson.M{
		"name":      doc.Name,
		"memberIds": doc.MemberIDs,
		"updatedAt": doc.UpdatedAt,
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

func (r *GroupRepository) Delete(ctx context.Context, id string) error {
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

func (r *GroupRepository) ToggleStore(ctx context.Context, groupID, storeID string) (bool, error) {
	oid, err := objectID(groupID)
	if err != nil {
		return false, err
	}
	sid, err := objectID(storeID)
	if err != nil {
		return false, err
	}
	return toggleMember(ctx, r.collection, bson.M{"_id": oid}, "storeIds", sid)
}

func buildGroupDocument(group *domain.Group) (GroupDocument, error) {
	ownerID, err := objectID(group.OwnerID)
	if err != nil {
		return GroupDocument{}, err
	}
	return GroupDocument{
		Name:      group.Name,
		OwnerID:   ownerID,
		MemberIDs: objectIDs(group.MemberIDs),
		StoreIDs:  objectIDs(group.StoreIDs),
		CreatedAt: group.CreatedAt,
		UpdatedAt: group.UpdatedAt,
	}, nil
}

func mapGroupDocument(doc GroupDocument) domain.Group {
	return domain.Group{
		ID:        doc.ID.Hex(),
		Name:      doc.Name,
		OwnerID:   doc.OwnerID.Hex(),
		MemberIDs: hexIDs(doc.MemberIDs),
		StoreIDs:  hexIDs(doc.StoreIDs),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
