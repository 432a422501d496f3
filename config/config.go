package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Pix      PixConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

// PixConfig for deposit charges and creator payouts via the PSP's PIX API.
type PixConfig struct {
	BaseURL        string
	ClientID       string
	ClientSecret   string
	WebhookBaseURL string // callback will be WebhookBaseURL + /api/v1/webhooks/pix
	WebhookSecret  string
}

func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("[Config] loaded .env")
	}
	return &Config{
		Server: ServerConfig{
			Port:         getenv("PORT", "8080"),
			Env:          getenv("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             getenv("DATABASE_DSN", "criavo:criavo@tcp(localhost:3306)/criavo?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    getenvInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getenvInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  getenv("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: getenv("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "criavo",
		},
		Pix: PixConfig{
			BaseURL:        getenv("PIX_BASE_URL", ""),
			ClientID:       getenv("PIX_CLIENT_ID", ""),
			ClientSecret:   getenv("PIX_CLIENT_SECRET", ""),
			WebhookBaseURL: getenv("PIX_WEBHOOK_BASE_URL", ""),
			WebhookSecret:  getenv("PIX_WEBHOOK_SECRET", ""),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
