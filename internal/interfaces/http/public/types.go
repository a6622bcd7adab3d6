package public

import (
	"time"

	publicapp "github.com/sngm3741/delight-spot/api/internal/public/application"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

type tinyUserResponse struct {
	PK       string `json:"pk"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

type privateUserResponse struct {
	PK          string    `json:"pk"`
	Username    string    `json:"username"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Avatar      string    `json:"avatar"`
	IsHost      bool      `json:"is_host"`
	KakaoLinked bool      `json:"kakao_linked"`
	DateJoined  time.Time `json:"date_joined"`
}

type sellListResponse struct {
	PK          string `json:"pk"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type noticeResponse struct {
	PK          string    `json:"pk"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type storeListItemResponse struct {
	PK          string             `json:"pk"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	ReviewsLen  any                `json:"reviews_len"`
	KindMenu    string             `json:"kind_menu"`
	KindDetail  string             `json:"kind_detail"`
	SellList    []sellListResponse `json:"sell_list"`
	City        string             `json:"city"`
	Rating      domain.Rating      `json:"rating"`
	IsOwner     bool               `json:"is_owner"`
	UserName    string             `json:"user_name"`
	IsLiked     bool               `json:"is_liked"`
	Photos      []string           `json:"photos"`
}

type storeDetailResponse struct {
	storeListItemResponse
	Owner       tinyUserResponse `json:"owner"`
	PetFriendly bool             `json:"pet_friendly"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

type reviewResponse struct {
	PK               string           `json:"pk"`
	User             tinyUserResponse `json:"user"`
	Store            *string          `json:"store"`
	TotalRating      float64          `json:"total_rating"`
	TasteRating      int              `json:"taste_rating"`
	AtmosphereRating int              `json:"atmosphere_rating"`
	KindnessRating   int              `json:"kindness_rating"`
	CleanRating      int              `json:"clean_rating"`
	ParkingRating    int              `json:"parking_rating"`
	RestroomRating   int              `json:"restroom_rating"`
	Description      string           `json:"description"`
	ReviewPhoto      []string         `json:"review_photo"`
	CreatedAt        time.Time        `json:"created_at"`
}

type bookingResponse struct {
	PK    string                  `json:"pk"`
	Name  string                  `json:"name"`
	User  tinyUserResponse        `json:"user"`
	Store []storeListItemResponse `json:"store"`
}

type bookingToggleResponse struct {
	StoreID string `json:"store_id"`
	IsLiked bool   `json:"is_liked"`
	Message string `json:"message"`
}

type groupStoreResponse struct {
	PK   string `json:"pk"`
	Name string `json:"name"`
}

type groupResponse struct {
	PK      string               `json:"pk"`
	Name    string               `json:"name"`
	Owner   string               `json:"owner"`
	Members []tinyUserResponse   `json:"members"`
	Stores  []groupStoreResponse `json:"stores"`
}

type storeCreateRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description"`
	KindMenu    string   `json:"kind_menu" validate:"required,oneof=food cafe"`
	KindDetail  string   `json:"kind_detail" validate:"max=20"`
	PetFriendly bool     `json:"pet_friendly"`
	City        string   `json:"city" validate:"max=100"`
	SellList    []string `json:"sell_list"`
	Photos      []string `json:"photos" validate:"max=10,dive,url"`
}

type storeUpdateRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=200"`
	Description *string  `json:"description"`
	KindMenu    *string  `json:"kind_menu" validate:"omitempty,oneof=food cafe"`
	KindDetail  *string  `json:"kind_detail" validate:"omitempty,max=20"`
	PetFriendly *bool    `json:"pet_friendly"`
	City        *string  `json:"city" validate:"omitempty,max=100"`
	SellList    []string `json:"sell_list"`
	Photos      []string `json:"photos" validate:"omitempty,max=10,dive,url"`
}

type reviewCreateRequest struct {
	TasteRating      *int     `json:"taste_rating" validate:"required,gte=0,lte=5"`
	AtmosphereRating *int     `json:"atmosphere_rating" validate:"required,gte=0,lte=5"`
	KindnessRating   *int     `json:"kindness_rating" validate:"required,gte=0,lte=5"`
	CleanRating      *int     `json:"clean_rating" validate:"required,gte=0,lte=5"`
	ParkingRating    *int     `json:"parking_rating" validate:"required,gte=0,lte=5"`
	RestroomRating   *int     `json:"restroom_rating" validate:"required,gte=0,lte=5"`
	Description      string   `json:"description" validate:"required"`
	ReviewPhoto      []string `json:"review_photo" validate:"max=10,dive,url"`
}

type reviewPatchFields struct {
	TasteRating      *int     `json:"taste_rating" validate:"omitempty,gte=0,lte=5"`
	AtmosphereRating *int     `json:"atmosphere_rating" validate:"omitempty,gte=0,lte=5"`
	KindnessRating   *int     `json:"kindness_rating" validate:"omitempty,gte=0,lte=5"`
	CleanRating      *int     `json:"clean_rating" validate:"omitempty,gte=0,lte=5"`
	ParkingRating    *int     `json:"parking_rating" validate:"omitempty,gte=0,lte=5"`
	RestroomRating   *int     `json:"restroom_rating" validate:"omitempty,gte=0,lte=5"`
	Description      *string  `json:"description"`
	ReviewPhoto      []string `json:"review_photo" validate:"omitempty,max=10,dive,url"`
}

// reviewPatchRequest accepts the fields at top level or wrapped in reviewData.
type reviewPatchRequest struct {
	reviewPatchFields
	ReviewData *reviewPatchFields `json:"reviewData"`
}

type sellListRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=150"`
	Description *string `json:"description" validate:"omitempty,max=150"`
}

type bookingToggleRequest struct {
	StorePK []string `json:"store_pk" validate:"required,min=1"`
}

type groupRequest struct {
	Name    *string  `json:"name" validate:"omitempty,max=150"`
	Members []string `json:"members"`
}

type groupStoreRequest struct {
	StorePK string `json:"store_pk" validate:"required"`
}

type signupRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type logInRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

type meUpdateRequest struct {
	Name   *string `json:"name" validate:"omitempty,max=150"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Avatar *string `json:"avatar" validate:"omitempty,url"`
	IsHost *bool   `json:"is_host"`
}

type kakaoLoginRequest struct {
	Code string `json:"code"`
}

type kakaoSignupRequest struct {
	Email        string `json:"email"`
	SignupTicket string `json:"signup_ticket"`
}

func buildTinyUser(user domain.UserSummary) tinyUserResponse {
	return tinyUserResponse{PK: user.ID, Username: user.Username, Name: user.Name, Avatar: user.AvatarURL}
}

func buildPrivateUser(user domain.User) privateUserResponse {
	return privateUserResponse{
		PK:          user.ID,
		Username:    user.Username,
		Name:        user.Name,
		Email:       user.Email,
		Avatar:      user.AvatarURL,
		IsHost:      user.IsHost,
		KakaoLinked: user.KakaoID != "",
		DateJoined:  user.CreatedAt,
	}
}

func buildSellList(item domain.SellList) sellListResponse {
	return sellListResponse{PK: item.ID, Name: item.Name, Description: item.Description}
}

func buildNotices(notices []domain.Notice) []noticeResponse {
	out := make([]noticeResponse, 0, len(notices))
	for _, n := range notices {
		out = append(out, noticeResponse{
			PK:          n.ID,
			Name:        n.Name,
			Description: n.Description,
			CreatedAt:   n.CreatedAt,
			UpdatedAt:   n.UpdatedAt,
		})
	}
	return out
}

func buildSellLists(items []domain.SellList) []sellListResponse {
	out := make([]sellListResponse, 0, len(items))
	for _, item := range items {
		out = append(out, buildSellList(item))
	}
	return out
}

// reviewsLen reports the review count, or the NoReviews sentinel when there are none.
func reviewsLen(stats domain.StoreStats) any {
	if stats.ReviewCount == 0 {
		return domain.NoReviews
	}
	return stats.ReviewCount
}

func buildStoreListItem(view publicapp.StoreView) storeListItemResponse {
	photos := view.PhotoURLs
	if photos == nil {
		photos = []string{}
	}
	return storeListItemResponse{
		PK:          view.ID,
		Name:        view.Name,
		Description: view.Description,
		ReviewsLen:  reviewsLen(view.Stats),
		KindMenu:    view.KindMenu.String(),
		KindDetail:  view.KindDetail.String(),
		SellList:    buildSellLists(view.SellList),
		City:        view.City,
		Rating:      view.Rating,
		IsOwner:     view.IsOwner,
		UserName:    view.Owner.Username,
		IsLiked:     view.IsLiked,
		Photos:      photos,
	}
}

func buildStoreList(views []publicapp.StoreView) []storeListItemResponse {
	out := make([]storeListItemResponse, 0, len(views))
	for _, view := range views {
		out = append(out, buildStoreListItem(view))
	}
	return out
}

func buildStoreDetail(view publicapp.StoreView) storeDetailResponse {
	return storeDetailResponse{
		storeListItemResponse: buildStoreListItem(view),
		Owner:                 buildTinyUser(view.Owner),
		PetFriendly:           view.PetFriendly,
		CreatedAt:             view.CreatedAt,
		UpdatedAt:             view.UpdatedAt,
	}
}

func buildReview(review domain.Review) reviewResponse {
	resp := reviewResponse{
		PK:               review.ID,
		User:             buildTinyUser(review.User),
		TotalRating:      review.Average(),
		TasteRating:      review.Taste,
		AtmosphereRating: review.Atmosphere,
		KindnessRating:   review.Kindness,
		CleanRating:      review.Cleanliness,
		ParkingRating:    review.Parking,
		RestroomRating:   review.Restroom,
		Description:      review.Description,
		ReviewPhoto:      review.PhotoURLs,
		CreatedAt:        review.CreatedAt,
	}
	if resp.ReviewPhoto == nil {
		resp.ReviewPhoto = []string{}
	}
	if review.StoreID != "" {
		storeID := review.StoreID
		resp.Store = &storeID
	}
	return resp
}

func buildReviews(reviews []domain.Review) []reviewResponse {
	out := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		out = append(out, buildReview(review))
	}
	return out
}

func buildGroup(view publicapp.GroupView) groupResponse {
	resp := groupResponse{
		PK:      view.ID,
		Name:    view.Name,
		Owner:   view.OwnerID,
		Members: make([]tinyUserResponse, 0, len(view.Members)),
		Stores:  make([]groupStoreResponse, 0, len(view.Stores)),
	}
	for _, member := range view.Members {
		resp.Members = append(resp.Members, buildTinyUser(member))
	}
	for _, store := range view.Stores {
		resp.Stores = append(resp.Stores, groupStoreResponse{PK: store.ID, Name: store.Name})
	}
	return resp
}
