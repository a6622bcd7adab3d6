package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collections はリポジトリが利用するコレクション名の束。
type Collections struct {
	Stores    string
	Reviews   string
	Users     string
	SellLists string
	Bookings  string
	Groups    string
	Notices   string
}

// StoreDocument は MongoDB 上での店舗スキーマを Go 構造体として表現したもの。
type StoreDocument struct {
	ID          primitive.ObjectID   `bson:"_id"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	KindMenu    string               `bson:"kindMenu"`
	KindDetail  string               `bson:"kindDetail,omitempty"`
	PetFriendly bool                 `bson:"petFriendly"`
	City        string               `bson:"city,omitempty"`
	OwnerID     primitive.ObjectID   `bson:"ownerId"`
	SellListIDs []primitive.ObjectID `bson:"sellListIds"`
	PhotoURLs   []string             `bson:"photoURLs,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

// StoreAggregateDocument は集計パイプラインの出力。レビュー集計とオーナー・販売リストを含む。
type StoreAggregateDocument struct {
	StoreDocument `bson:",inline"`
	Owner         []UserDocument     `bson:"owner"`
	SellList      []SellListDocument `bson:"sellList"`
	ReviewCount   int                `bson:"reviewCount"`
	RatingTotal   int                `bson:"ratingTotal"`
}

// ReviewDocument は六項目評価のレビュー。店舗削除後は storeId が null になる。
type ReviewDocument struct {
	ID          primitive.ObjectID  `bson:"_id"`
	UserID      primitive.ObjectID  `bson:"userId"`
	StoreID     *primitive.ObjectID `bson:"storeId"`
	Taste       int                 `bson:"taste"`
	Atmosphere  int                 `bson:"atmosphere"`
	Kindness    int                 `bson:"kindness"`
	Cleanliness int                 `bson:"cleanliness"`
	Parking     int                 `bson:"parking"`
	Restroom    int                 `bson:"restroom"`
	Description string              `bson:"description"`
	PhotoURLs   []string            `bson:"photoURLs,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt"`
}

// ReviewAggregateDocument は投稿者を結合したレビュー。
type ReviewAggregateDocument struct {
	ReviewDocument `bson:",inline"`
	User           []UserDocument `bson:"user"`
}

// UserDocument はアカウント。kakaoId はカカオ連携時のみ存在する。
type UserDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Username     string             `bson:"username"`
	Name         string             `bson:"name,omitempty"`
	Email        string             `bson:"email,omitempty"`
	AvatarURL    string             `bson:"avatarURL,omitempty"`
	KakaoID      string             `bson:"kakaoId,omitempty"`
	PasswordHash string             `bson:"passwordHash"`
	IsHost       bool               `bson:"isHost"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

// SellListDocument は販売メニュー項目。
type SellListDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// BookingDocument はユーザーごとに一件のお気に入りリスト。
type BookingDocument struct {
	ID        primitive.ObjectID   `bson:"_id"`
	UserID    primitive.ObjectID   `bson:"userId"`
	Name      string               `bson:"name"`
	StoreIDs  []primitive.ObjectID `bson:"storeIds"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

// GroupDocument はメンバーと共有店舗リストを持つグループ。
type GroupDocument struct {
	ID        primitive.ObjectID   `bson:"_id"`
	Name      string               `bson:"name"`
	OwnerID   primitive.ObjectID   `bson:"ownerId"`
	MemberIDs []primitive.ObjectID `bson:"memberIds"`
	StoreIDs  []primitive.ObjectID `bson:"storeIds"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

// NoticeDocument は公開お知らせ。
type NoticeDocument struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}
