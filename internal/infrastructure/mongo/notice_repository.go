package mongo

import (
	"context"
	"regexp"

	"github.com/sngm3741/delight-spot/api/internal/public/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NoticeRepository implements application.NoticeRepository using MongoDB.
type NoticeRepository struct {
	collection *mongo.Collection
}

func NewNoticeRepository(db *mongo.Database, names Collections) *NoticeRepository {
	return &NoticeRepository{collection: db.Collection(names.Notices)}
}

// List は登録順にお知らせを返す。keyword があれば名前の部分一致（大文字小文字を区別しない）で絞り込む。
func (r *NoticeRepository) List(ctx context.Context, keyword string) ([]domain.Notice, error) {
	cursor, err := r.collection.Find(ctx, buildNoticeFilter(keyword), options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notices := make([]domain.Notice, 0)
	for cursor.Next(ctx) {
		var doc NoticeDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		notices = append(notices, domain.Notice{
			ID:          doc.ID.Hex(),
			Name:        doc.Name,
			Description: doc.Description,
			CreatedAt:   doc.CreatedAt,
			UpdatedAt:   doc.UpdatedAt,
		})
	}
	return notices, cursor.Err()
}

func (r *NoticeRepository) Create(ctx context.Context, notice *domain.Notice) error {
	doc := NoticeDocument{
		ID:          primitive.NewObjectID(),
		Name:        notice.Name,
		Description: notice.Description,
		CreatedAt:   notice.CreatedAt,
		UpdatedAt:   notice.UpdatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return translateErr(err)
	}
	notice.ID = doc.ID.Hex()
	return nil
}

func buildNoticeFilter(keyword string) bson.M {
	if keyword == "" {
		return bson.M{}
	}
	return bson.M{"name": keywordRegex(keyword)}
}

func keywordRegex(keyword string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(keyword), Options: "i"}
}
