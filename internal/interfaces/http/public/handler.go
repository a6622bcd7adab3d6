package public

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sngm3741/delight-spot/api/internal/auth"
	"github.com/sngm3741/delight-spot/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/delight-spot/api/internal/public/application"
)

const requestTimeout = 5 * time.Second

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger          *slog.Logger
	stores          publicapp.StoreService
	reviews         publicapp.ReviewService
	sellLists       publicapp.SellListService
	bookings        publicapp.BookingService
	groups          publicapp.GroupService
	users           publicapp.UserService
	notices         publicapp.NoticeService
	kakao           *auth.KakaoAuthenticator
	sessions        auth.SessionStore
	pageSize        int
	cookieSecure    bool
	sessionTTL      time.Duration
	signupTicketTTL time.Duration
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger          *slog.Logger
	Stores          publicapp.StoreService
	Reviews         publicapp.ReviewService
	SellLists       publicapp.SellListService
	Bookings        publicapp.BookingService
	Groups          publicapp.GroupService
	Users           publicapp.UserService
	Notices         publicapp.NoticeService
	Kakao           *auth.KakaoAuthenticator
	Sessions        auth.SessionStore
	PageSize        int
	CookieSecure    bool
	SessionTTL      time.Duration
	SignupTicketTTL time.Duration
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = publicapp.DefaultPageSize
	}
	return &Handler{
		logger:          logger,
		stores:          cfg.Stores,
		reviews:         cfg.Reviews,
		sellLists:       cfg.SellLists,
		bookings:        cfg.Bookings,
		groups:          cfg.Groups,
		users:           cfg.Users,
		notices:         cfg.Notices,
		kakao:           cfg.Kakao,
		sessions:        cfg.Sessions,
		pageSize:        pageSize,
		cookieSecure:    cfg.CookieSecure,
		sessionTTL:      cfg.SessionTTL,
		signupTicketTTL: cfg.SignupTicketTTL,
	}
}

// Register mounts all public routes onto the router. Credentials must already
// be resolved into the request context.
func (h *Handler) Register(r chi.Router) {
	requireAuth := common.RequireAuth(h.logger)
	requireToken := common.RequireToken(h.logger)

	r.Route("/stores", func(r chi.Router) {
		r.Get("/", h.storeListHandler())
		r.With(requireAuth).Post("/", h.storeCreateHandler())
		r.Get("/{pk}", h.storeDetailHandler())
		r.With(requireToken).Put("/{pk}", h.storeUpdateHandler())
		r.With(requireToken).Delete("/{pk}", h.storeDeleteHandler())
		r.Get("/{pk}/reviews", h.storeReviewListHandler())
		r.With(requireAuth).Post("/{pk}/reviews", h.storeReviewCreateHandler())
		r.Get("/{pk}/selllists", h.storeSellListHandler())
		r.With(requireAuth).Post("/{pk}/selllists", h.storeSellListCreateHandler())
	})

	r.Route("/selllists", func(r chi.Router) {
		r.Get("/", h.sellListListHandler())
		r.With(requireAuth).Post("/", h.sellListCreateHandler())
		r.Get("/{pk}", h.sellListDetailHandler())
		r.With(requireAuth).Put("/{pk}", h.sellListUpdateHandler())
		r.With(requireAuth).Delete("/{pk}", h.sellListDeleteHandler())
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", h.bookingGetHandler())
		r.Post("/", h.bookingToggleHandler())
	})

	r.Route("/groups", func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/", h.groupListHandler())
		r.Post("/", h.groupCreateHandler())
		r.Get("/{pk}", h.groupDetailHandler())
		r.Put("/{pk}", h.groupUpdateHandler())
		r.Delete("/{pk}", h.groupDeleteHandler())
		r.Post("/{pk}/stores", h.groupStoreToggleHandler())
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", h.userSignupHandler())
		r.With(requireAuth).Get("/me", h.meHandler())
		r.With(requireAuth).Put("/me", h.meUpdateHandler())
		r.With(requireAuth).Put("/change-password", h.changePasswordHandler())
		r.Post("/log-in", h.logInHandler())
		r.With(requireAuth).Post("/log-out", h.logOutHandler())
		r.Post("/kakao/login", h.kakaoLoginHandler())
		r.Post("/kakao/signup", h.kakaoSignupHandler())
		r.Get("/@{username}", h.publicUserHandler())
		r.Get("/@{username}/reviews", h.userReviewListHandler())
		r.With(requireAuth).Put("/@{username}/reviews/{pk}", h.userReviewUpdateHandler())
		r.With(requireAuth).Delete("/@{username}/reviews/{pk}", h.userReviewDeleteHandler())
		r.Get("/@{username}/stores", h.userStoreListHandler())
		r.With(requireAuth).Get("/@{username}/stores/{pk}", h.userStoreDetailHandler())
		r.With(requireAuth).Put("/@{username}/stores/{pk}", h.userStoreUpdateHandler())
		r.With(requireAuth).Delete("/@{username}/stores/{pk}", h.userStoreDeleteHandler())
	})

	r.Get("/notice", h.noticeListHandler())
}

func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}

func (h *Handler) page(r *http.Request) publicapp.Page {
	return common.PageFromRequest(r, h.pageSize)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	common.WriteError(h.logger, w, r, err)
}

func (h *Handler) ok(w http.ResponseWriter, status int, payload any) {
	common.WriteJSON(h.logger, w, status, payload)
}
