package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultKakaoAuthURL = "https://kauth.kakao.com"
	DefaultKakaoAPIURL  = "https://kapi.kakao.com"

	maxProviderBody = 1 << 20
)

// KakaoProfile is the subset of the Kakao user profile the service keeps.
type KakaoProfile struct {
	ID              string `json:"id"`
	Nickname        string `json:"nickname"`
	ProfileImageURL string `json:"profile_image_url"`
}

// KakaoToken is the token endpoint response.
type KakaoToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// ProviderError carries a non-200 provider response so it can be passed through to the client.
type ProviderError struct {
	Stage  string
	Status int
	Body   json.RawMessage
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("kakao %s returned status %d", e.Stage, e.Status)
}

// KakaoProvider is the OAuth provider surface used by the login flow.
type KakaoProvider interface {
	ExchangeCode(ctx context.Context, code string) (*KakaoToken, error)
	FetchProfile(ctx context.Context, accessToken string) (*KakaoProfile, error)
}

// KakaoConfig configures the Kakao client.
type KakaoConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthBaseURL  string
	APIBaseURL   string
	Timeout      time.Duration
}

// KakaoClient talks to the Kakao OAuth and user APIs.
type KakaoClient struct {
	cfg  KakaoConfig
	http *http.Client
}

func NewKakaoClient(cfg KakaoConfig) *KakaoClient {
	if cfg.AuthBaseURL == "" {
		cfg.AuthBaseURL = DefaultKakaoAuthURL
	}
	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultKakaoAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	cfg.AuthBaseURL = strings.TrimRight(cfg.AuthBaseURL, "/")
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return &KakaoClient{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}}
}

// ExchangeCode trades an authorization code for tokens.
func (c *KakaoClient) ExchangeCode(ctx context.Context, code string) (*KakaoToken, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.cfg.ClientID)
	form.Set("redirect_uri", c.cfg.RedirectURI)
	form.Set("code", code)
	if c.cfg.ClientSecret != "" {
		form.Set("client_secret", c.cfg.ClientSecret)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.AuthBaseURL+"/oauth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req, "token exchange")
	if err != nil {
		return nil, err
	}
	var token KakaoToken
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("decode kakao token: %w", err)
	}
	if token.AccessToken == "" {
		return nil, errors.New("kakao token response has no access token")
	}
	return &token, nil
}

// FetchProfile loads the user profile for an access token.
func (c *KakaoClient) FetchProfile(ctx context.Context, accessToken string) (*KakaoProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIBaseURL+"/v2/user/me", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	body, err := c.do(req, "profile fetch")
	if err != nil {
		return nil, err
	}
	var payload struct {
		ID           json.Number `json:"id"`
		KakaoAccount struct {
			Profile struct {
				Nickname        string `json:"nickname"`
				ProfileImageURL string `json:"profile_image_url"`
			} `json:"profile"`
		} `json:"kakao_account"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode kakao profile: %w", err)
	}
	if payload.ID.String() == "" {
		return nil, errors.New("kakao profile has no id")
	}
	return &KakaoProfile{
		ID:              payload.ID.String(),
		Nickname:        payload.KakaoAccount.Profile.Nickname,
		ProfileImageURL: payload.KakaoAccount.Profile.ProfileImageURL,
	}, nil
}

func (c *KakaoClient) do(req *http.Request, stage string) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kakao %s: %w", stage, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProviderBody))
	if err != nil {
		return nil, fmt.Errorf("read kakao %s: %w", stage, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Stage: stage, Status: resp.StatusCode, Body: providerBody(body)}
	}
	return body, nil
}

// providerBody keeps JSON bodies as they are and wraps anything else.
func providerBody(body []byte) json.RawMessage {
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	wrapped, _ := json.Marshal(map[string]string{"error": strings.TrimSpace(string(body))})
	return wrapped
}
