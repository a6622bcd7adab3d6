package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/sngm3741/delight-spot/api/internal/auth"
	"github.com/sngm3741/delight-spot/api/internal/config"
	"github.com/sngm3741/delight-spot/api/internal/interfaces/http/common"
	publichttp "github.com/sngm3741/delight-spot/api/internal/interfaces/http/public"
	publicapp "github.com/sngm3741/delight-spot/api/internal/public/application"
	"github.com/sngm3741/delight-spot/api/internal/util"
)

const serviceName = "delight-spot-api"

// Server は HTTP サーバーのライフサイクルを管理し、Public ハンドラへ依存注入するコンポジションルート。
type Server struct {
	logger         *slog.Logger
	client         *mongo.Client
	redis          *redis.Client
	tokens         *auth.TokenIssuer
	sessions       auth.SessionStore
	public         *publichttp.Handler
	driver         string
	addr           string
	allowedOrigins []string
}

// Deps は New に渡す外部リソース。Client と Redis は nil を許容する。
type Deps struct {
	Logger       *slog.Logger
	Client       *mongo.Client
	Redis        *redis.Client
	Repositories Repositories
	// Kakao を差し替えるとテストから外部 API を呼ばずに済む。
	Kakao auth.KakaoProvider
}

// New は Config と外部リソースを受け取り、アプリケーションサービスとハンドラを組み立てた Server を返す。
func New(cfg config.Config, deps Deps) (*Server, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	var (
		sessions auth.SessionStore
		tickets  auth.TicketStore
	)
	if deps.Redis != nil {
		sessions = auth.NewRedisSessionStore(deps.Redis, cfg.SessionTTL)
		tickets = auth.NewRedisTicketStore(deps.Redis, cfg.SignupTicketTTL)
	} else {
		logger.Warn("redis not configured; sessions and signup tickets are kept in memory")
		sessions = auth.NewMemorySessionStore(cfg.SessionTTL)
		tickets = auth.NewMemoryTicketStore(cfg.SignupTicketTTL)
	}

	provider := deps.Kakao
	if provider == nil {
		provider = auth.NewKakaoClient(auth.KakaoConfig{
			ClientID:     cfg.Kakao.ClientID,
			ClientSecret: cfg.Kakao.ClientSecret,
			RedirectURI:  cfg.Kakao.RedirectURI,
			AuthBaseURL:  cfg.Kakao.AuthBaseURL,
			APIBaseURL:   cfg.Kakao.APIBaseURL,
			Timeout:      cfg.Kakao.Timeout,
		})
	}

	repos := deps.Repositories
	kakao := auth.NewKakaoAuthenticator(provider, repos.Users, repos.Bookings, tokens, sessions, tickets, logger)

	public := publichttp.NewHandler(publichttp.Config{
		Logger:          logger,
		Stores:          publicapp.NewStoreService(repos.Stores, repos.SellLists, repos.Bookings, repos.Users),
		Reviews:         publicapp.NewReviewService(repos.Reviews, repos.Stores, repos.Users),
		SellLists:       publicapp.NewSellListService(repos.SellLists, repos.Stores),
		Bookings:        publicapp.NewBookingService(repos.Bookings, repos.Stores, repos.Users),
		Groups:          publicapp.NewGroupService(repos.Groups, repos.Users, repos.Stores),
		Users:           publicapp.NewUserService(repos.Users, repos.Bookings, auth.NewBcryptHasher()),
		Notices:         publicapp.NewNoticeService(repos.Notices),
		Kakao:           kakao,
		Sessions:        sessions,
		PageSize:        cfg.PageSize,
		CookieSecure:    cfg.CookieSecure,
		SessionTTL:      cfg.SessionTTL,
		SignupTicketTTL: cfg.SignupTicketTTL,
	})

	return &Server{
		logger:         logger,
		client:         deps.Client,
		redis:          deps.Redis,
		tokens:         tokens,
		sessions:       sessions,
		public:         public,
		driver:         cfg.StorageDriver,
		addr:           cfg.Addr,
		allowedOrigins: append([]string(nil), cfg.AllowedOrigins...),
	}, nil
}

// Router はミドルウェアとルーティングを組み立てる。
func (s *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(util.WithRequestID)
	router.Use(func(next http.Handler) http.Handler {
		return util.WithRequestLog(serviceName, next)
	})
	router.Use(middleware.Recoverer)
	router.Use(withCORS(s.allowedOrigins))

	router.Get("/healthz", s.healthHandler())
	router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.credentialMiddleware)
		s.public.Register(r)
	})
	return router
}

// Run は HTTP サーバーを起動し、シグナル受信で graceful shutdown する。
func (s *Server) Run() error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.addr, "driver", s.driver)
		errChan <- httpServer.ListenAndServe()
	}()

	return waitForShutdown(httpServer, errChan, s)
}

// withCORS は許可されたオリジン情報をもとに CORS ヘッダーを付与するミドルウェアを返す。
func withCORS(origins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{})
	allowAll := false
	for _, origin := range origins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if origin == "*" {
			allowAll = true
			continue
		}
		allowed[origin] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" || (!allowAll && !originAllowed(origin, allowed)) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusNoContent)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type,Jwt,X-Request-Id")
			w.Header().Set("Access-Control-Max-Age", "300")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed map[string]struct{}) bool {
	_, ok := allowed[origin]
	return ok
}

// healthHandler は MongoDB と Redis への疎通確認を行う。メモリドライバでは常に ok。
func (s *Server) healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if s.client != nil {
			if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
				common.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"error":  err.Error(),
				})
				return
			}
		}
		if s.redis != nil {
			if err := s.redis.Ping(ctx).Err(); err != nil {
				common.WriteJSON(s.logger, w, http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"error":  err.Error(),
				})
				return
			}
		}

		common.WriteJSON(s.logger, w, http.StatusOK, map[string]string{
			"status": "ok",
			"driver": s.driver,
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// shutdown は外部クライアントをタイムアウト付きで切断する。
func (s *Server) shutdown(ctx context.Context) {
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if s.client != nil {
		if err := s.client.Disconnect(shutdownCtx); err != nil {
			s.logger.Error("mongo disconnect failed", "error", err)
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("redis close failed", "error", err)
		}
	}
}

// waitForShutdown は ListenAndServe の終了と OS シグナルを監視する。
func waitForShutdown(httpServer *http.Server, errChan <-chan error, srv *Server) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	var runErr error
	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("http server: %w", err)
		}
	case sig := <-sigChan:
		srv.logger.Info("shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			srv.logger.Error("http shutdown failed", "error", err)
		}
	}

	srv.shutdown(context.Background())
	return runErr
}
