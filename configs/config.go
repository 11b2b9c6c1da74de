package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string
	Port      string
	BaseURL   string // public base URL for gateway callback/webhook URLs
	DBDriver  string // sqlite | postgres
	DBSource  string
	RedisAddr string // optional; empty disables the webhook event cache
	SentryDSN string

	JWTSecret string
	JWTTTL    time.Duration

	Currency          string
	DeliveryFee       int64 // cents
	YocoSecretKey     string
	YocoWebhookSecret string

	DraftRetention time.Duration

	AdminEmail    string
	AdminPassword string
}

func LoadConfig() *Config {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	return &Config{
		Env:       getEnv("APP_ENV", "development"),
		Port:      getEnv("PORT", "8000"),
		BaseURL:   getEnv("BASE_URL", "http://localhost:8000"),
		DBDriver:  getEnv("DB_DRIVER", "sqlite"),
		DBSource:  getEnv("DB_SOURCE", "lattelane.db"),
		RedisAddr: os.Getenv("REDIS_ADDR"),
		SentryDSN: os.Getenv("SENTRY_DSN"),

		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_HOURS", 24)) * time.Hour,

		Currency:          getEnv("CURRENCY", "ZAR"),
		DeliveryFee:       int64(getEnvInt("DELIVERY_FEE_CENTS", 2000)),
		YocoSecretKey:     os.Getenv("YOCO_SECRET_KEY"),
		YocoWebhookSecret: os.Getenv("YOCO_WEBHOOK_SECRET"),

		DraftRetention: time.Duration(getEnvInt("DRAFT_RETENTION_HOURS", 6)) * time.Hour,

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
