package server

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sngm3741/delight-spot/api/internal/config"
	"github.com/sngm3741/delight-spot/api/internal/infrastructure/memory"
	mongodoc "github.com/sngm3741/delight-spot/api/internal/infrastructure/mongo"
	publicapp "github.com/sngm3741/delight-spot/api/internal/public/application"
)

// Repositories はアプリケーションサービスが依存する永続化ポートの束。
type Repositories struct {
	Stores    publicapp.StoreRepository
	Reviews   publicapp.ReviewRepository
	SellLists publicapp.SellListRepository
	Users     publicapp.UserRepository
	Bookings  publicapp.BookingRepository
	Groups    publicapp.GroupRepository
	Notices   publicapp.NoticeRepository
}

// MongoCollections は設定値を Mongo リポジトリ用のコレクション名へ変換する。
func MongoCollections(cfg config.Collections) mongodoc.Collections {
	return mongodoc.Collections{
		Stores:    cfg.Stores,
		Reviews:   cfg.Reviews,
		Users:     cfg.Users,
		SellLists: cfg.SellLists,
		Bookings:  cfg.Bookings,
		Groups:    cfg.Groups,
		Notices:   cfg.Notices,
	}
}

// NewMongoRepositories は MongoDB をバックエンドとするリポジトリ群を返す。
func NewMongoRepositories(db *mongo.Database, names mongodoc.Collections) Repositories {
	return Repositories{
		Stores:    mongodoc.NewStoreRepository(db, names),
		Reviews:   mongodoc.NewReviewRepository(db, names),
		SellLists: mongodoc.NewSellListRepository(db, names),
		Users:     mongodoc.NewUserRepository(db, names),
		Bookings:  mongodoc.NewBookingRepository(db, names),
		Groups:    mongodoc.NewGroupRepository(db, names),
		Notices:   mongodoc.NewNoticeRepository(db, names),
	}
}

// NewMemoryRepositories はプロセス内メモリに保持するリポジトリ群を返す。
func NewMemoryRepositories() Repositories {
	db := memory.NewDB()
	return Repositories{
		Stores:    memory.NewStoreRepository(db),
		Reviews:   memory.NewReviewRepository(db),
		SellLists: memory.NewSellListRepository(db),
		Users:     memory.NewUserRepository(db),
		Bookings:  memory.NewBookingRepository(db),
		Groups:    memory.NewGroupRepository(db),
		Notices:   memory.NewNoticeRepository(db),
	}
}
