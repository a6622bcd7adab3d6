package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

func newTestIssuer(t *testing.T, ttl time.Duration) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer("test-secret", "delight-spot", "", ttl)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	return issuer
}

func TestTokenIssuerRoundTrip(t *testing.T) {
	issuer := newTestIssuer(t, time.Hour)
	token, err := issuer.Issue(domain.User{ID: "user-1", KakaoID: "12345"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := issuer.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "user-1" || claims.KakaoID != "12345" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	principal := claims.Principal()
	if principal.UserID != "user-1" || principal.KakaoID != "12345" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestTokenIssuerRejectsExpired(t *testing.T) {
	issuer := newTestIssuer(t, time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := issuer.Issue(domain.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	issuer.now = time.Now
	if _, err := issuer.Parse(token); !errors.Is(err, application.ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failure, got %v", err)
	}
}

func TestTokenIssuerRejectsForeignSecret(t *testing.T) {
	other, err := NewTokenIssuer("other-secret", "delight-spot", "", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}
	token, err := other.Issue(domain.User{ID: "user-1"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := newTestIssuer(t, time.Hour).Parse(token); !errors.Is(err, application.ErrAuthenticationFailed) {
		t.Fatalf("expected authentication failure, got %v", err)
	}
}

func TestTokenIssuerRejectsOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		KakaoID:          "12345",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1", Issuer: "delight-spot"},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := newTestIssuer(t, time.Hour).Parse(signed); err == nil {
		t.Fatal("expected none algorithm to be rejected")
	}
}

func TestNewTokenIssuerRequiresSecret(t *testing.T) {
	if _, err := NewTokenIssuer(" ", "", "", time.Hour); err == nil {
		t.Fatal("expected empty secret to fail")
	}
}

func TestBcryptHasher(t *testing.T) {
	hasher := &BcryptHasher{Cost: 4}
	hash, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !hasher.Compare(hash, "s3cret") {
		t.Fatal("expected password to match")
	}
	if hasher.Compare(hash, "wrong") {
		t.Fatal("expected wrong password to fail")
	}
	if hasher.Compare(domain.UnusablePassword, "") {
		t.Fatal("expected unusable password to never match")
	}
}
