package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/sngm3741/delight-spot/api/internal/infrastructure/memory"
	"github.com/sngm3741/delight-spot/api/internal/public/application"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "plain:" + password, nil }
func (plainHasher) Compare(hash, password string) bool { return hash == "plain:"+password }

type services struct {
	users     *memory.UserRepository
	stores    application.StoreService
	reviews   application.ReviewService
	sellLists application.SellListService
	bookings  application.BookingService
	groups    application.GroupService
	accounts  application.UserService
}

func newServices() *services {
	db := memory.NewDB()
	storeRepo := memory.NewStoreRepository(db)
	reviewRepo := memory.NewReviewRepository(db)
	sellRepo := memory.NewSellListRepository(db)
	userRepo := memory.NewUserRepository(db)
	bookingRepo := memory.NewBookingRepository(db)
	groupRepo := memory.NewGroupRepository(db)
	return &services{
		users:     userRepo,
		stores:    application.NewStoreService(storeRepo, sellRepo, bookingRepo, userRepo),
		reviews:   application.NewReviewService(reviewRepo, storeRepo, userRepo),
		sellLists: application.NewSellListService(sellRepo, storeRepo),
		bookings:  application.NewBookingService(bookingRepo, storeRepo, userRepo),
		groups:    application.NewGroupService(groupRepo, userRepo, storeRepo),
		accounts:  application.NewUserService(userRepo, bookingRepo, plainHasher{}),
	}
}

func (s *services) user(t *testing.T, username string) application.Principal {
	t.Helper()
	user := &domain.User{Username: username, PasswordHash: domain.UnusablePassword}
	if err := s.users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return application.Principal{UserID: user.ID}
}

func (s *services) store(t *testing.T, owner application.Principal, name, kind string) string {
	t.Helper()
	view, err := s.stores.Create(context.Background(), owner, application.CreateStoreCommand{Name: name, KindMenu: kind})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	return view.ID
}

func (s *services) review(t *testing.T, author application.Principal, storeID string, rating int) {
	t.Helper()
	_, err := s.reviews.Create(context.Background(), author, storeID, application.ReviewInput{
		Taste: rating, Atmosphere: rating, Kindness: rating,
		Cleanliness: rating, Parking: rating, Restroom: rating,
		Description: "ok",
	})
	if err != nil {
		t.Fatalf("create review: %v", err)
	}
}

func names(views []application.StoreView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Name)
	}
	return out
}

func TestStoreListSortByRating(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	owner := s.user(t, "owner")
	reviewer := s.user(t, "reviewer")
	s.store(t, owner, "none", "food")
	low := s.store(t, owner, "low", "food")
	high := s.store(t, owner, "high", "food")
	s.review(t, reviewer, low, 2)
	s.review(t, reviewer, high, 5)
	s.review(t, reviewer, high, 4)

	views, err := s.stores.List(ctx, application.Principal{}, application.ListStoresQuery{
		Types: []string{"rate"},
		Page:  application.FirstPage(),
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := names(views)
	want := []string{"high", "low", "none"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
	if views[0].Rating.Value != 4.5 || views[2].Rating.Valid {
		t.Fatalf("ratings = %+v / %+v", views[0].Rating, views[2].Rating)
	}

	views, err = s.stores.List(ctx, application.Principal{}, application.ListStoresQuery{
		Types: []string{"reviews"},
		Page:  application.FirstPage(),
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := names(views); got[0] != "high" || views[0].Stats.ReviewCount != 2 {
		t.Fatalf("review order = %v", got)
	}
}

func TestStoreListFlags(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	owner := s.user(t, "owner")
	fan := s.user(t, "fan")
	storeID := s.store(t, owner, "spot", "cafe")

	if _, err := s.bookings.Toggle(ctx, fan, []string{storeID}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	views, err := s.stores.List(ctx, fan, application.ListStoresQuery{Page: application.FirstPage()})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !views[0].IsLiked || views[0].IsOwner {
		t.Fatalf("fan view = %+v", views[0])
	}
	views, _ = s.stores.List(ctx, owner, application.ListStoresQuery{Page: application.FirstPage()})
	if views[0].IsLiked || !views[0].IsOwner {
		t.Fatalf("owner view = %+v", views[0])
	}
	anon, _ := s.stores.List(ctx, application.Principal{}, application.ListStoresQuery{Page: application.FirstPage()})
	if anon[0].IsLiked || anon[0].IsOwner {
		t.Fatalf("anonymous view = %+v", anon[0])
	}
}

func TestStoreOwnershipByKakaoID(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	user := &domain.User{Username: "kakao", KakaoID: "k-1"}
	if err := s.users.Create(ctx, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	storeID := s.store(t, application.Principal{UserID: user.ID}, "spot", "food")

	name := "renamed"
	if _, err := s.stores.Update(ctx, application.Principal{KakaoID: "k-1"}, storeID, application.UpdateStoreCommand{Name: &name}); err != nil {
		t.Fatalf("update by kakao id: %v", err)
	}
	_, err := s.stores.Update(ctx, application.Principal{KakaoID: "k-2"}, storeID, application.UpdateStoreCommand{Name: &name})
	if !errors.Is(err, application.ErrPermissionDenied) {
		t.Fatalf("err = %v, want permission denied", err)
	}
	if err := s.stores.Delete(ctx, application.Principal{}, storeID); !errors.Is(err, application.ErrAuthenticationFailed) {
		t.Fatalf("anonymous delete err = %v", err)
	}
}

func TestStoreDeleteDetachesReviewsAndBookings(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	owner := s.user(t, "owner")
	fan := s.user(t, "fan")
	storeID := s.store(t, owner, "spot", "food")
	s.review(t, fan, storeID, 3)
	if _, err := s.bookings.Toggle(ctx, fan, []string{storeID}); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if err := s.stores.Delete(ctx, owner, storeID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	reviews, err := s.reviews.ListForUser(ctx, "fan", application.FirstPage())
	if err != nil || len(reviews) != 1 || reviews[0].StoreID != "" {
		t.Fatalf("reviews = %+v err = %v", reviews, err)
	}
	booking, err := s.bookings.Get(ctx, fan, application.FirstPage())
	if err != nil || len(booking.StoreIDs) != 0 {
		t.Fatalf("booking = %+v err = %v", booking, err)
	}
}

func TestBookingToggleIsAllOrNothing(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	owner := s.user(t, "owner")
	fan := s.user(t, "fan")
	storeID := s.store(t, owner, "spot", "food")

	_, err := s.bookings.Toggle(ctx, fan, []string{storeID, "missing"})
	if !application.IsValidation(err) {
		t.Fatalf("err = %v, want validation", err)
	}
	booking, err := s.bookings.Get(ctx, fan, application.FirstPage())
	if err != nil || booking.Contains(storeID) {
		t.Fatalf("booking = %+v err = %v", booking, err)
	}

	for i, want := range []bool{true, false} {
		results, err := s.bookings.Toggle(ctx, fan, []string{storeID})
		if err != nil {
			t.Fatalf("toggle %d: %v", i, err)
		}
		if results[0].IsLiked != want {
			t.Fatalf("toggle %d is_liked = %v", i, results[0].IsLiked)
		}
	}
}

func TestReviewAuthorOnly(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	owner := s.user(t, "owner")
	author := s.user(t, "author")
	storeID := s.store(t, owner, "spot", "food")
	review, err := s.reviews.Create(ctx, author, storeID, application.ReviewInput{Taste: 1, Description: "x"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if review.User.Username != "author" {
		t.Fatalf("user = %+v", review.User)
	}
	six := 6
	if _, err := s.reviews.Update(ctx, author, review.ID, application.ReviewPatch{Taste: &six}); !application.IsValidation(err) {
		t.Fatalf("out of range err = %v", err)
	}
	if err := s.reviews.Delete(ctx, owner, review.ID); !errors.Is(err, application.ErrPermissionDenied) {
		t.Fatalf("foreign delete err = %v", err)
	}
	if err := s.reviews.Delete(ctx, author, review.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.reviews.Detail(ctx, review.ID); !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("detail after delete err = %v", err)
	}
}

func TestSellListForStore(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	owner := s.user(t, "owner")
	storeID := s.store(t, owner, "spot", "food")

	name := "latte"
	item, err := s.sellLists.CreateForStore(ctx, storeID, application.SellListInput{Name: &name})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	items, err := s.sellLists.ListForStore(ctx, storeID, application.FirstPage())
	if err != nil || len(items) != 1 || items[0].ID != item.ID {
		t.Fatalf("items = %+v err = %v", items, err)
	}
	if err := s.sellLists.Delete(ctx, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	items, _ = s.sellLists.ListForStore(ctx, storeID, application.FirstPage())
	if len(items) != 0 {
		t.Fatalf("items after delete = %+v", items)
	}
	if _, err := s.sellLists.Create(ctx, application.SellListInput{}); !application.IsValidation(err) {
		t.Fatalf("nameless create err = %v", err)
	}
}

func TestGroupMembership(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	owner := s.user(t, "owner")
	member := s.user(t, "member")
	stranger := s.user(t, "stranger")
	storeID := s.store(t, owner, "spot", "food")

	name := "crew"
	group, err := s.groups.Create(ctx, owner, application.GroupInput{Name: &name, MemberIDs: []string{member.UserID}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.groups.Create(ctx, owner, application.GroupInput{Name: &name, MemberIDs: []string{"ghost"}}); !application.IsValidation(err) {
		t.Fatalf("unknown member err = %v", err)
	}
	added, err := s.groups.ToggleStore(ctx, member, group.ID, storeID)
	if err != nil || !added {
		t.Fatalf("toggle = %v err = %v", added, err)
	}
	detail, err := s.groups.Detail(ctx, owner, group.ID)
	if err != nil || len(detail.Stores) != 1 || len(detail.Members) != 1 {
		t.Fatalf("detail = %+v err = %v", detail, err)
	}
	if _, err := s.groups.Detail(ctx, stranger, group.ID); !errors.Is(err, application.ErrPermissionDenied) {
		t.Fatalf("stranger err = %v", err)
	}
	if err := s.groups.Delete(ctx, member, group.ID); !errors.Is(err, application.ErrPermissionDenied) {
		t.Fatalf("member delete err = %v", err)
	}
	list, err := s.groups.List(ctx, member, application.FirstPage())
	if err != nil || len(list) != 1 {
		t.Fatalf("member list = %+v err = %v", list, err)
	}
}

func TestUserAccountFlow(t *testing.T) {
	s := newServices()
	ctx := context.Background()
	user, err := s.accounts.Signup(ctx, application.SignupCommand{Username: "neo", Password: "pw", Email: "Neo@Example.com"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Email != "neo@example.com" {
		t.Fatalf("email = %q", user.Email)
	}
	if _, err := s.accounts.Signup(ctx, application.SignupCommand{Username: "neo", Password: "x"}); !application.IsValidation(err) {
		t.Fatalf("duplicate err = %v", err)
	}
	if _, err := s.accounts.Authenticate(ctx, "neo", "bad"); !application.IsValidation(err) {
		t.Fatalf("wrong password err = %v", err)
	}
	principal := application.Principal{UserID: user.ID}
	if err := s.accounts.ChangePassword(ctx, principal, "bad", "new"); !application.IsValidation(err) {
		t.Fatalf("change with wrong old err = %v", err)
	}
	if err := s.accounts.ChangePassword(ctx, principal, "pw", "new"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if _, err := s.accounts.Authenticate(ctx, "neo", "new"); err != nil {
		t.Fatalf("authenticate with new password: %v", err)
	}
	if _, err := s.bookings.Get(ctx, principal, application.FirstPage()); err != nil {
		t.Fatalf("booking after signup: %v", err)
	}
	host := true
	if _, err := s.accounts.UpdateMe(ctx, principal, application.UpdateProfileCommand{IsHost: &host}); !errors.Is(err, application.ErrPermissionDenied) {
		t.Fatalf("is_host err = %v", err)
	}
}
