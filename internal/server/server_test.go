package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/sngm3741/delight-spot/api/internal/auth"
	"github.com/sngm3741/delight-spot/api/internal/config"
	"github.com/sngm3741/delight-spot/api/internal/interfaces/http/common"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

type noKakao struct{}

func (noKakao) ExchangeCode(context.Context, string) (*auth.KakaoToken, error) {
	return nil, &auth.ProviderError{Stage: "token", Status: http.StatusBadRequest, Body: json.RawMessage(`{"error":"disabled"}`)}
}

func (noKakao) FetchProfile(context.Context, string) (*auth.KakaoProfile, error) {
	return nil, &auth.ProviderError{Stage: "profile", Status: http.StatusBadRequest, Body: json.RawMessage(`{}`)}
}

type testServer struct {
	srv   *Server
	repos Repositories
	http  http.Handler
}

func newTestServer(t *testing.T, redisClient *redis.Client) *testServer {
	t.Helper()
	cfg := config.Config{
		StorageDriver:   config.DriverMemory,
		JWTSecret:       "test-secret",
		JWTIssuer:       "delight-spot",
		JWTTTL:          time.Hour,
		SessionTTL:      time.Hour,
		SignupTicketTTL: time.Minute,
		AllowedOrigins:  []string{"https://app.example"},
		PageSize:        10,
	}
	repos := NewMemoryRepositories()
	srv, err := New(cfg, Deps{
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		Redis:        redisClient,
		Repositories: repos,
		Kakao:        noKakao{},
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return &testServer{srv: srv, repos: repos, http: srv.Router()}
}

func (ts *testServer) user(t *testing.T, username string) domain.User {
	t.Helper()
	user := &domain.User{Username: username, KakaoID: "k-" + username, PasswordHash: domain.UnusablePassword}
	if err := ts.repos.Users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return *user
}

func (ts *testServer) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.http.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, nil)
	rec := ts.serve(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatalf("missing request id header")
	}
}

func TestCredentialResolution(t *testing.T) {
	ts := newTestServer(t, nil)
	user := ts.user(t, "neo")
	token, err := ts.srv.tokens.Issue(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	sessionID, err := ts.srv.sessions.Create(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("session: %v", err)
	}

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"anonymous", func(*http.Request) {}, http.StatusUnauthorized},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, http.StatusOK},
		{"bare token", func(r *http.Request) { r.Header.Set("Authorization", token) }, http.StatusOK},
		{"jwt header", func(r *http.Request) { r.Header.Set("Jwt", token) }, http.StatusOK},
		{"session cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: sessionID})
		}, http.StatusOK},
		{"unknown session", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: "nope"})
		}, http.StatusUnauthorized},
		{"bad token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer garbage") }, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			tt.setup(req)
			if rec := ts.serve(req); rec.Code != tt.status {
				t.Fatalf("status = %d, want %d body = %s", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestStoreWritesNeedToken(t *testing.T) {
	ts := newTestServer(t, nil)
	user := ts.user(t, "owner")
	token, _ := ts.srv.tokens.Issue(user)
	sessionID, _ := ts.srv.sessions.Create(context.Background(), user.ID)

	body, _ := json.Marshal(map[string]any{"name": "Cafe", "kind_menu": "cafe"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stores", bytes.NewReader(body))
	req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: sessionID})
	rec := ts.serve(req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d body = %s", rec.Code, rec.Body.String())
	}
	var created map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	storeID, _ := created["pk"].(string)

	patch, _ := json.Marshal(map[string]any{"city": "Seoul"})
	req = httptest.NewRequest(http.MethodPut, "/api/v1/stores/"+storeID, bytes.NewReader(patch))
	req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: sessionID})
	if rec := ts.serve(req); rec.Code != http.StatusUnauthorized {
		t.Fatalf("session update status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPut, "/api/v1/stores/"+storeID, bytes.NewReader(patch))
	req.Header.Set("Authorization", "Bearer "+token)
	if rec := ts.serve(req); rec.Code != http.StatusOK {
		t.Fatalf("token update status = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestKakaoProviderErrorPassesThrough(t *testing.T) {
	ts := newTestServer(t, nil)
	body, _ := json.Marshal(map[string]string{"code": "abc"})
	rec := ts.serve(httptest.NewRequest(http.MethodPost, "/api/v1/users/kakao/login", bytes.NewReader(body)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Body.String(); got != `{"error":"disabled"}` {
		t.Fatalf("body = %s", got)
	}
}

func TestRedisBackedSessions(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	ts := newTestServer(t, client)

	body, _ := json.Marshal(map[string]string{"username": "trinity", "password": "pw"})
	if rec := ts.serve(httptest.NewRequest(http.MethodPost, "/api/v1/users", bytes.NewReader(body))); rec.Code != http.StatusCreated {
		t.Fatalf("signup status = %d body = %s", rec.Code, rec.Body.String())
	}
	rec := ts.serve(httptest.NewRequest(http.MethodPost, "/api/v1/users/log-in", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("log-in status = %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("no session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.AddCookie(cookies[0])
	if rec := ts.serve(req); rec.Code != http.StatusOK {
		t.Fatalf("me status = %d", rec.Code)
	}
	if len(mr.Keys()) == 0 {
		t.Fatalf("session not stored in redis")
	}
	if rec := ts.serve(httptest.NewRequest(http.MethodGet, "/healthz", nil)); rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	ts := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/stores", nil)
	req.Header.Set("Origin", "https://app.example")
	rec := ts.serve(req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://app.example" {
		t.Fatalf("allow origin = %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/stores", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = ts.serve(req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("foreign origin allowed")
	}
}
