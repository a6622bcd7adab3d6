package mongo

import (
	"context"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository implements application.UserRepository using MongoDB.
type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database, names Collections) *UserRepository {
	return &UserRepository{collection: db.Collection(names.Users)}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) FindByKakaoID(ctx context.Context, kakaoID string) (*domain.User, error) {
	if kakaoID == "" {
		return nil, application.ErrNotFound
	}
	return r.findOne(ctx, bson.M{"kakaoId": kakaoID})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc UserDocument
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translateErr(err)
	}
	user := mapUserDocument(doc)
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	doc := buildUserDocument(user)
	doc.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return translateErr(err)
	}
	user.ID = doc.ID.Hex()
	return nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	oid, err := objectID(user.ID)
	if err != nil {
		return err
	}
	doc := buildUserDocument(user)
	doc.ID = oid
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return translateErr(err)
	}
	if result.MatchedCount == 0 {
		return application.ErrNotFound
	}
	return nil
}

func buildUserDocument(user *domain.User) UserDocument {
	return UserDocument{
		Username:     user.Username,
		Name:         user.Name,
		Email:        user.Email,
		AvatarURL:    user.AvatarURL,
		KakaoID:      user.KakaoID,
		PasswordHash: user.PasswordHash,
		IsHost:       user.IsHost,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

func mapUserDocument(doc UserDocument) domain.User {
	return domain.User{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		Name:         doc.Name,
		Email:        doc.Email,
		AvatarURL:    doc.AvatarURL,
		KakaoID:      doc.KakaoID,
		PasswordHash: doc.PasswordHash,
		IsHost:       doc.IsHost,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
