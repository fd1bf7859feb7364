package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	// Outbound mail (confirmation emails, invoice delivery)
	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string

	// Payment gateway credential pair
	RazorpayKeyID     string
	RazorpayKeySecret string
	Currency          string

	// Invoice artifacts
	StoragePath string
	TaxRate     float64

	// Optional infrastructure; empty disables the feature
	RedisAddr   string
	RabbitMQURL string

	RateLimit RateLimitConfig
}

// RateLimitConfig controls the token-bucket limiter on login and payment routes.
type RateLimitConfig struct {
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	ttlStr := getEnv("JWT_ACCESS_TOKEN_TTL", "1h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// SMTP settings. Host may be empty in dev; the mailer then fails on send,
	// which every caller treats as a best-effort outcome.
	cfg.SMTPHost = getEnv("SMTP_HOST", "")
	cfg.SMTPPort, err = getEnvAsInt("SMTP_PORT", 465)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	cfg.SMTPUser = getEnv("SMTP_USER", "")
	cfg.SMTPPass = getEnv("SMTP_PASS", "")
	cfg.MailFrom = getEnv("MAIL_FROM", cfg.SMTPUser)

	// Razorpay credential pair is required: bookings are paid up front.
	cfg.RazorpayKeyID = os.Getenv("RZP_KEY_ID")
	cfg.RazorpayKeySecret = os.Getenv("RZP_KEY_SEC")
	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		return nil, fmt.Errorf("RZP_KEY_ID and RZP_KEY_SEC are required")
	}
	cfg.Currency = getEnv("CURRENCY", "INR")

	cfg.StoragePath = getEnv("STORAGE_PATH", "data")

	cfg.TaxRate, err = getEnvAsFloat("TAX_RATE", 0.18)
	if err != nil {
		return nil, fmt.Errorf("invalid TAX_RATE: %w", err)
	}

	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RabbitMQURL = getEnv("RABBITMQ_URL", "")

	cfg.RateLimit, err = loadRateLimit()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadRateLimit() (RateLimitConfig, error) {
	rl := RateLimitConfig{}

	var err error
	rl.Capacity, err = getEnvAsInt("RATE_LIMIT_CAPACITY", 3)
	if err != nil {
		return rl, fmt.Errorf("invalid RATE_LIMIT_CAPACITY: %w", err)
	}
	rl.RefillTokens, err = getEnvAsInt("RATE_LIMIT_REFILL_TOKENS", 3)
	if err != nil {
		return rl, fmt.Errorf("invalid RATE_LIMIT_REFILL_TOKENS: %w", err)
	}

	intervalStr := getEnv("RATE_LIMIT_REFILL_INTERVAL", "1m")
	rl.RefillInterval, err = time.ParseDuration(intervalStr)
	if err != nil {
		return rl, fmt.Errorf("invalid RATE_LIMIT_REFILL_INTERVAL: %w", err)
	}

	ttlStr := getEnv("RATE_LIMIT_TTL", "10m")
	rl.TTL, err = time.ParseDuration(ttlStr)
	if err != nil {
		return rl, fmt.Errorf("invalid RATE_LIMIT_TTL: %w", err)
	}

	return rl, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsFloat retrieves an environment variable as a float64.
// It returns the default value if the variable is not set.
func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid number: %w", key, valStr, err)
	}

	return val, nil
}
