package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

func TestRedisSessionStoreLifecycle(t *testing.T) {
	server, client := newTestRedis(t)
	store := NewRedisSessionStore(client, time.Minute)
	ctx := context.Background()

	sessionID, err := store.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	userID, ok, err := store.Lookup(ctx, sessionID)
	if err != nil || !ok || userID != "user-1" {
		t.Fatalf("lookup: user=%q ok=%v err=%v", userID, ok, err)
	}

	if err := store.Delete(ctx, sessionID); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if _, ok, err := store.Lookup(ctx, sessionID); err != nil || ok {
		t.Fatalf("expected deleted session to be gone, ok=%v err=%v", ok, err)
	}

	sessionID, err = store.Create(ctx, "user-2")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	server.FastForward(2 * time.Minute)
	if _, ok, _ := store.Lookup(ctx, sessionID); ok {
		t.Fatal("expected session to expire")
	}
}

func TestMemorySessionStoreExpires(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	sessionID, err := store.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if _, ok, _ := store.Lookup(ctx, sessionID); !ok {
		t.Fatal("expected live session")
	}
	now = now.Add(2 * time.Minute)
	if _, ok, _ := store.Lookup(ctx, sessionID); ok {
		t.Fatal("expected session to expire")
	}
}

func TestRedisTicketStoreIsSingleUse(t *testing.T) {
	_, client := newTestRedis(t)
	store := NewRedisTicketStore(client, time.Minute)
	ctx := context.Background()
	profile := KakaoProfile{ID: "42", Nickname: "mango", ProfileImageURL: "https://img.example/42.png"}

	ticket, err := store.Issue(ctx, profile)
	if err != nil {
		t.Fatalf("issue ticket: %v", err)
	}
	got, err := store.Redeem(ctx, ticket)
	if err != nil {
		t.Fatalf("redeem ticket: %v", err)
	}
	if *got != profile {
		t.Fatalf("unexpected profile: %+v", got)
	}
	if _, err := store.Redeem(ctx, ticket); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected second redeem to fail, got %v", err)
	}
}

func TestRedisTicketStoreExpires(t *testing.T) {
	server, client := newTestRedis(t)
	store := NewRedisTicketStore(client, time.Minute)
	ctx := context.Background()

	ticket, err := store.Issue(ctx, KakaoProfile{ID: "42"})
	if err != nil {
		t.Fatalf("issue ticket: %v", err)
	}
	server.FastForward(2 * time.Minute)
	if _, err := store.Redeem(ctx, ticket); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected expired ticket, got %v", err)
	}
}

func TestMemoryTicketStoreIsSingleUse(t *testing.T) {
	store := NewMemoryTicketStore(time.Minute)
	ctx := context.Background()
	ticket, err := store.Issue(ctx, KakaoProfile{ID: "7"})
	if err != nil {
		t.Fatalf("issue ticket: %v", err)
	}
	if _, err := store.Redeem(ctx, ticket); err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if _, err := store.Redeem(ctx, ticket); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected second redeem to fail, got %v", err)
	}
}
