package application

import (
	"context"

	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

// StoreRepository abstracts persistence of stores. Reads populate Owner, SellList and Stats.
type StoreRepository interface {
	Query(ctx context.Context, query StoreQuery, page Page) ([]domain.Store, error)
	FindByID(ctx context.Context, id string) (*domain.Store, error)
	Create(ctx context.Context, store *domain.Store) error
	Update(ctx context.Context, store *domain.Store) error
	// Delete removes the store, detaches its reviews and drops it from bookings and groups.
	Delete(ctx context.Context, id string) error
	AddSellList(ctx context.Context, storeID, sellListID string) error
}

// ReviewRepository abstracts persistence of reviews. Reads populate User.
type ReviewRepository interface {
	ListByStore(ctx context.Context, storeID string, page Page) ([]domain.Review, error)
	ListByUser(ctx context.Context, userID string, page Page) ([]domain.Review, error)
	FindByID(ctx context.Context, id string) (*domain.Review, error)
	Create(ctx context.Context, review *domain.Review) error
	Update(ctx context.Context, review *domain.Review) error
	Delete(ctx context.Context, id string) error
}

// SellListRepository abstracts persistence of sell list items.
type SellListRepository interface {
	List(ctx context.Context) ([]domain.SellList, error)
	FindByID(ctx context.Context, id string) (*domain.SellList, error)
	Create(ctx context.Context, item *domain.SellList) error
	Update(ctx context.Context, item *domain.SellList) error
	// Delete removes the item and detaches it from every store.
	Delete(ctx context.Context, id string) error
}

// NoticeRepository abstracts persistence of notices.
type NoticeRepository interface {
	// List returns notices in insertion order, filtered by a case-insensitive name keyword when set.
	List(ctx context.Context, keyword string) ([]domain.Notice, error)
	Create(ctx context.Context, notice *domain.Notice) error
}

// UserRepository abstracts persistence of accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByKakaoID(ctx context.Context, kakaoID string) (*domain.User, error)
	// Create returns ErrConflict when the username or Kakao id is taken.
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
}

// BookingRepository abstracts the per-user favourites list.
type BookingRepository interface {
	// EnsureForUser returns the user's booking, creating it when missing. Safe under concurrency.
	EnsureForUser(ctx context.Context, userID string) (*domain.Booking, error)
	FindByUser(ctx context.Context, userID string) (*domain.Booking, error)
	// Toggle flips membership of storeID and returns the new state.
	Toggle(ctx context.Context, userID, storeID string) (bool, error)
}

// GroupRepository abstracts persistence of groups and their shared store lists.
type GroupRepository interface {
	ListForMember(ctx context.Context, userID string, page Page) ([]domain.Group, error)
	FindByID(ctx context.Context, id string) (*domain.Group, error)
	Create(ctx context.Context, group *domain.Group) error
	Update(ctx context.Context, group *domain.Group) error
	Delete(ctx context.Context, id string) error
	ToggleStore(ctx context.Context, groupID, storeID string) (bool, error)
}

// PasswordHasher hashes and verifies local passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// Principal identifies the caller of a use-case. The zero value is anonymous.
type Principal struct {
	UserID  string
	KakaoID string
}

// Authenticated reports whether the principal names a user.
func (p Principal) Authenticated() bool {
	return p.UserID != "" || p.KakaoID != ""
}

// owns reports whether the principal is the owner, matching either the local id or the Kakao identity.
func (p Principal) owns(ownerID, ownerKakaoID string) bool {
	if p.UserID != "" && p.UserID == ownerID {
		return true
	}
	return p.KakaoID != "" && p.KakaoID == ownerKakaoID
}

// StoreView is a store as seen by a particular principal.
type StoreView struct {
	domain.Store
	Rating  domain.Rating
	IsOwner bool
	IsLiked bool
}

// ListStoresQuery captures the raw listing parameters.
type ListStoresQuery struct {
	Keyword string
	Types   []string
	Page    Page
}

// CreateStoreCommand captures input for a new store.
type CreateStoreCommand struct {
	Name        string
	Description string
	KindMenu    string
	KindDetail  string
	PetFriendly bool
	City        string
	SellListIDs []string
	PhotoURLs   []string
}

// UpdateStoreCommand is a partial update; nil fields are left unchanged.
type UpdateStoreCommand struct {
	Name        *string
	Description *string
	KindMenu    *string
	KindDetail  *string
	PetFriendly *bool
	City        *string
	SellListIDs []string
	PhotoURLs   []string
}

// ReviewInput captures the six sub-ratings and the text of a review.
type ReviewInput struct {
	Taste       int
	Atmosphere  int
	Kindness    int
	Cleanliness int
	Parking     int
	Restroom    int
	Description string
	PhotoURLs   []string
}

// ReviewPatch is a partial review update.
type ReviewPatch struct {
	Taste       *int
	Atmosphere  *int
	Kindness    *int
	Cleanliness *int
	Parking     *int
	Restroom    *int
	Description *string
	PhotoURLs   []string
}

// SellListInput captures a sell list item.
type SellListInput struct {
	Name        *string
	Description *string
}

// BookingView is the principal's booking with the bookmarked stores of one page.
type BookingView struct {
	domain.Booking
	User   domain.UserSummary
	Stores []StoreView
}

// BookingToggle is the per-store result of a booking toggle.
type BookingToggle struct {
	StoreID string
	IsLiked bool
	Message string
}

// GroupInput captures a group create or update. Nil fields are left unchanged on update.
type GroupInput struct {
	Name      *string
	MemberIDs []string
}

// GroupView is a group with resolved members and shared stores.
type GroupView struct {
	domain.Group
	Members []domain.UserSummary
	Stores  []domain.Store
}

// SignupCommand captures a username/password signup.
type SignupCommand struct {
	Username string
	Password string
	Name     string
	Email    string
}

// UpdateProfileCommand is a partial profile update.
type UpdateProfileCommand struct {
	Name      *string
	Email     *string
	AvatarURL *string
	IsHost    *bool
}

// StoreService describes store use-cases.
type StoreService interface {
	List(ctx context.Context, principal Principal, query ListStoresQuery) ([]StoreView, error)
	ListByOwner(ctx context.Context, principal Principal, username string, page Page) ([]StoreView, error)
	Detail(ctx context.Context, principal Principal, id string) (*StoreView, error)
	Create(ctx context.Context, principal Principal, cmd CreateStoreCommand) (*StoreView, error)
	Update(ctx context.Context, principal Principal, id string, cmd UpdateStoreCommand) (*StoreView, error)
	Delete(ctx context.Context, principal Principal, id string) error
}

// ReviewService describes review use-cases.
type ReviewService interface {
	ListForStore(ctx context.Context, storeID string, page Page) ([]domain.Review, error)
	ListForUser(ctx context.Context, username string, page Page) ([]domain.Review, error)
	Detail(ctx context.Context, id string) (*domain.Review, error)
	Create(ctx context.Context, principal Principal, storeID string, input ReviewInput) (*domain.Review, error)
	Update(ctx context.Context, principal Principal, id string, patch ReviewPatch) (*domain.Review, error)
	Delete(ctx context.Context, principal Principal, id string) error
}

// SellListService describes sell list use-cases.
type SellListService interface {
	List(ctx context.Context) ([]domain.SellList, error)
	Detail(ctx context.Context, id string) (*domain.SellList, error)
	Create(ctx context.Context, input SellListInput) (*domain.SellList, error)
	Update(ctx context.Context, id string, input SellListInput) (*domain.SellList, error)
	Delete(ctx context.Context, id string) error
	ListForStore(ctx context.Context, storeID string, page Page) ([]domain.SellList, error)
	CreateForStore(ctx context.Context, storeID string, input SellListInput) (*domain.SellList, error)
}

// NoticeService describes the public notice listing.
type NoticeService interface {
	List(ctx context.Context, keyword string, page Page) ([]domain.Notice, error)
}

// BookingService describes favourites use-cases.
type BookingService interface {
	Get(ctx context.Context, principal Principal, page Page) (*BookingView, error)
	Toggle(ctx context.Context, principal Principal, storeIDs []string) ([]BookingToggle, error)
}

// GroupService describes group use-cases.
type GroupService interface {
	List(ctx context.Context, principal Principal, page Page) ([]GroupView, error)
	Detail(ctx context.Context, principal Principal, id string) (*GroupView, error)
	Create(ctx context.Context, principal Principal, input GroupInput) (*GroupView, error)
	Update(ctx context.Context, principal Principal, id string, input GroupInput) (*GroupView, error)
	Delete(ctx context.Context, principal Principal, id string) error
	ToggleStore(ctx context.Context, principal Principal, groupID, storeID string) (bool, error)
}

// UserService describes account use-cases.
type UserService interface {
	Signup(ctx context.Context, cmd SignupCommand) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Me(ctx context.Context, principal Principal) (*domain.User, error)
	UpdateMe(ctx context.Context, principal Principal, cmd UpdateProfileCommand) (*domain.User, error)
	ChangePassword(ctx context.Context, principal Principal, oldPassword, newPassword string) error
	PublicProfile(ctx context.Context, username string) (*domain.User, error)
}
