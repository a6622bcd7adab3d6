package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage drivers.
const (
	DriverMongo  = "mongo"
	DriverMemory = "memory"
)

// FileConfig is the optional YAML overlay named by CONFIG_FILE. Environment variables win over it.
type FileConfig struct {
	Addr              string   `yaml:"addr"`
	StorageDriver     string   `yaml:"storageDriver"`
	MongoURI          string   `yaml:"mongoURI"`
	MongoDatabase     string   `yaml:"mongoDatabase"`
	RedisAddr         string   `yaml:"redisAddr"`
	RedisPassword     string   `yaml:"redisPassword"`
	JWTSecret         string   `yaml:"jwtSecret"`
	JWTIssuer         string   `yaml:"jwtIssuer"`
	JWTAudience       string   `yaml:"jwtAudience"`
	JWTTTL            string   `yaml:"jwtTTL"`
	SessionTTL        string   `yaml:"sessionTTL"`
	SignupTicketTTL   string   `yaml:"signupTicketTTL"`
	KakaoClientID     string   `yaml:"kakaoClientID"`
	KakaoClientSecret string   `yaml:"kakaoClientSecret"`
	KakaoRedirectURI  string   `yaml:"kakaoRedirectURI"`
	AllowedOrigins    []string `yaml:"allowedOrigins"`
	PageSize          int      `yaml:"pageSize"`
	LogLevel          string   `yaml:"logLevel"`
	CookieSecure      *bool    `yaml:"cookieSecure"`
}

// Collections names the MongoDB collections.
type Collections struct {
	Stores    string
	Reviews   string
	Users     string
	SellLists string
	Bookings  string
	Groups    string
	Notices   string
}

// KakaoConfig holds the OAuth client settings.
type KakaoConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	AuthBaseURL  string
	APIBaseURL   string
	Timeout      time.Duration
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr            string
	StorageDriver   string
	MongoURI        string
	MongoDatabase   string
	Collections     Collections
	Timeout         time.Duration
	RedisAddr       string
	RedisPassword   string
	JWTSecret       string
	JWTIssuer       string
	JWTAudience     string
	JWTTTL          time.Duration
	SessionTTL      time.Duration
	SignupTicketTTL time.Duration
	Kakao           KakaoConfig
	AllowedOrigins  []string
	PageSize        int
	LogLevel        string
	CookieSecure    bool
}

// Load reads .env (when present), the CONFIG_FILE overlay and environment variables.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var file FileConfig
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &file); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cookieSecure := false
	if file.CookieSecure != nil {
		cookieSecure = *file.CookieSecure
	}
	if raw := strings.TrimSpace(os.Getenv("COOKIE_SECURE")); raw != "" {
		cookieSecure = strings.EqualFold(raw, "true")
	}

	pageSize := file.PageSize
	if raw := strings.TrimSpace(os.Getenv("PAGE_SIZE")); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			pageSize = n
		}
	}
	if pageSize <= 0 {
		pageSize = 10
	}

	allowedOrigins := file.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	cfg := Config{
		Addr:          envOrDefault("HTTP_ADDR", orDefault(file.Addr, ":8000")),
		StorageDriver: strings.ToLower(envOrDefault("STORAGE_DRIVER", orDefault(file.StorageDriver, DriverMongo))),
		MongoURI:      envOrDefault("MONGO_URI", orDefault(file.MongoURI, "mongodb://mongo:27017")),
		MongoDatabase: envOrDefault("MONGO_DB", orDefault(file.MongoDatabase, "delight-spot")),
		Collections: Collections{
			Stores:    envOrDefault("STORE_COLLECTION", "stores"),
			Reviews:   envOrDefault("REVIEW_COLLECTION", "reviews"),
			Users:     envOrDefault("USER_COLLECTION", "users"),
			SellLists: envOrDefault("SELL_LIST_COLLECTION", "sell_lists"),
			Bookings:  envOrDefault("BOOKING_COLLECTION", "bookings"),
			Groups:    envOrDefault("GROUP_COLLECTION", "groups"),
			Notices:   envOrDefault("NOTICE_COLLECTION", "notices"),
		},
		Timeout:         parseDuration("MONGO_CONNECT_TIMEOUT", "", 10*time.Second),
		RedisAddr:       envOrDefault("REDIS_ADDR", file.RedisAddr),
		RedisPassword:   envOrDefault("REDIS_PASSWORD", file.RedisPassword),
		JWTSecret:       envOrDefault("JWT_SECRET", file.JWTSecret),
		JWTIssuer:       envOrDefault("JWT_ISSUER", orDefault(file.JWTIssuer, "delight-spot")),
		JWTAudience:     envOrDefault("JWT_AUDIENCE", file.JWTAudience),
		JWTTTL:          parseDuration("JWT_TTL", file.JWTTTL, 24*time.Hour),
		SessionTTL:      parseDuration("SESSION_TTL", file.SessionTTL, 14*24*time.Hour),
		SignupTicketTTL: parseDuration("SIGNUP_TICKET_TTL", file.SignupTicketTTL, 10*time.Minute),
		Kakao: KakaoConfig{
			ClientID:     envOrDefault("KAKAO_CLIENT_ID", file.KakaoClientID),
			ClientSecret: envOrDefault("KAKAO_CLIENT_SECRET", file.KakaoClientSecret),
			RedirectURI:  envOrDefault("KAKAO_REDIRECT_URI", orDefault(file.KakaoRedirectURI, "http://127.0.0.1:3000/social/kakao")),
			AuthBaseURL:  envOrDefault("KAKAO_AUTH_BASE_URL", "https://kauth.kakao.com"),
			APIBaseURL:   envOrDefault("KAKAO_API_BASE_URL", "https://kapi.kakao.com"),
			Timeout:      parseDuration("KAKAO_TIMEOUT", "", 5*time.Second),
		},
		AllowedOrigins: parseList("API_ALLOWED_ORIGINS", allowedOrigins),
		PageSize:       pageSize,
		LogLevel:       envOrDefault("LOG_LEVEL", orDefault(file.LogLevel, "info")),
		CookieSecure:   cookieSecure,
	}
	if err := validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return errors.New("config: JWT_SECRET must be configured")
	}
	switch cfg.StorageDriver {
	case DriverMongo:
		if cfg.MongoURI == "" {
			return errors.New("config: MONGO_URI is required for the mongo driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

// parseDuration reads key, then the file value, falling back on anything unparsable.
func parseDuration(key, fileValue string, fallback time.Duration) time.Duration {
	for _, raw := range []string{os.Getenv(key), fileValue} {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if parsed, err := time.ParseDuration(raw); err == nil {
			return parsed
		}
	}
	return fallback
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
