// Package auth issues and verifies credentials: signed tokens, sessions,
// signup tickets, local passwords and the Kakao OAuth login flow.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
	"github.com/sngm3741/delight-spot/api/internal/public/domain"
)

const tokenLeeway = 30 * time.Second

// Claims is the payload of an access token. Subject holds the user id.
type Claims struct {
	KakaoID string `json:"kakao_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 access tokens.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewTokenIssuer builds an issuer. A zero ttl issues tokens without expiry.
func NewTokenIssuer(secret, issuer, audience string, ttl time.Duration) (*TokenIssuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &TokenIssuer{
		secret:   []byte(secret),
		issuer:   strings.TrimSpace(issuer),
		audience: strings.TrimSpace(audience),
		ttl:      ttl,
		now:      time.Now,
	}, nil
}

// Issue signs a token for user carrying its id and Kakao identity.
func (i *TokenIssuer) Issue(user domain.User) (string, error) {
	now := i.now().UTC()
	claims := Claims{
		KakaoID: user.KakaoID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  user.ID,
			Issuer:   i.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if i.audience != "" {
		claims.Audience = jwt.ClaimStrings{i.audience}
	}
	if i.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(i.ttl))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies a token and returns its claims.
func (i *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, application.ErrAuthenticationFailed
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(tokenLeeway),
		jwt.WithTimeFunc(i.now),
	}
	if i.issuer != "" {
		opts = append(opts, jwt.WithIssuer(i.issuer))
	}
	if i.audience != "" {
		opts = append(opts, jwt.WithAudience(i.audience))
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", application.ErrAuthenticationFailed)
	}
	if claims.Subject == "" && claims.KakaoID == "" {
		return nil, fmt.Errorf("%w: token carries no identity", application.ErrAuthenticationFailed)
	}
	return claims, nil
}

// Principal converts verified claims into an application principal.
func (c *Claims) Principal() application.Principal {
	return application.Principal{UserID: c.Subject, KakaoID: c.KakaoID}
}
