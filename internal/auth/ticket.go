package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sngm3741/delight-spot/api/internal/util"
)

const ticketKeyPrefix = "delight:signup-ticket:"

// ErrTicketNotFound is returned for unknown, expired or already redeemed tickets.
var ErrTicketNotFound = errors.New("signup ticket not found")

// TicketStore carries a Kakao profile from login to signup.
// A ticket expires after its TTL and can be redeemed once.
type TicketStore interface {
	Issue(ctx context.Context, profile KakaoProfile) (string, error)
	Redeem(ctx context.Context, ticket string) (*KakaoProfile, error)
}

// RedisTicketStore keeps signup tickets in Redis as JSON with TTL.
type RedisTicketStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTicketStore(client *redis.Client, ttl time.Duration) *RedisTicketStore {
	return &RedisTicketStore{client: client, ttl: ttl}
}

func (s *RedisTicketStore) Issue(ctx context.Context, profile KakaoProfile) (string, error) {
	raw, err := json.Marshal(profile)
	if err != nil {
		return "", fmt.Errorf("marshal signup ticket: %w", err)
	}
	ticket := util.NewID()
	if err := s.client.Set(ctx, ticketKeyPrefix+ticket, raw, s.ttl).Err(); err != nil {
		return "", err
	}
	return ticket, nil
}

func (s *RedisTicketStore) Redeem(ctx context.Context, ticket string) (*KakaoProfile, error) {
	if ticket == "" {
		return nil, ErrTicketNotFound
	}
	raw, err := s.client.GetDel(ctx, ticketKeyPrefix+ticket).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	var profile KakaoProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("decode signup ticket: %w", err)
	}
	return &profile, nil
}

// MemoryTicketStore keeps signup tickets in-process.
type MemoryTicketStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	tickets map[string]memoryTicket
}

type memoryTicket struct {
	profile   KakaoProfile
	expiresAt time.Time
}

func NewMemoryTicketStore(ttl time.Duration) *MemoryTicketStore {
	return &MemoryTicketStore{ttl: ttl, now: time.Now, tickets: make(map[string]memoryTicket)}
}

func (s *MemoryTicketStore) Issue(_ context.Context, profile KakaoProfile) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ticket := util.NewID()
	s.tickets[ticket] = memoryTicket{profile: profile, expiresAt: s.now().Add(s.ttl)}
	return ticket, nil
}

func (s *MemoryTicketStore) Redeem(_ context.Context, ticket string) (*KakaoProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.tickets[ticket]
	if !ok {
		return nil, ErrTicketNotFound
	}
	delete(s.tickets, ticket)
	if s.now().After(entry.expiresAt) {
		return nil, ErrTicketNotFound
	}
	profile := entry.profile
	return &profile, nil
}
