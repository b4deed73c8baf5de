package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port           string
	Env            string
	LogLevel       string
	Debug          bool
	TrustedProxies []string
	AllowedOrigins []string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	JWTSecret        string
	JWTRefreshSecret string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	SkipAuth bool // if true, JWT checks are disabled (development only)

	// Manual UPI payments (verified by an operator against the UTR)
	UPIID   string // merchant VPA, e.g. matratv@ybl
	UPIName string // payee name shown in the UPI app
	BaseURL string // public URL used when building referral links

	// Per-lookup deadline for the referral engine's store calls
	StoreTimeout time.Duration

	// Operator alerts via Telegram (empty token = disabled)
	TelegramBotToken string
	TelegramChatID   int64
}

func Load() *Config {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Debug:          getEnvAsBool("DEBUG", true),
		TrustedProxies: []string{},
		AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "matratv"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_ACCESS_SECRET", "default-access-secret"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", "default-refresh-secret"),
		JWTAccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", 15*time.Minute),
		JWTRefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", 30*24*time.Hour),

		SkipAuth: getEnvAsBool("SKIP_AUTH", false),

		UPIID:        getEnv("UPI_ID", "matratv@ybl"),
		UPIName:      getEnv("UPI_NAME", "MatraTV Connect"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:8080"),
		StoreTimeout: getEnvAsDuration("STORE_TIMEOUT", 5*time.Second),

		TelegramBotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:   getEnvAsInt64("TELEGRAM_CHAT_ID", 0),
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		cfg.TrustedProxies = strings.Split(proxies, ",")
	}

	log.Printf("📋 Config loaded: port=%s, mode=%s, db=%s, SkipAuth=%v, UPI=%s",
		cfg.Port, cfg.Env, cfg.DBName, cfg.SkipAuth, cfg.UPIID)
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	strVal := getEnv(key, "")
	if val, err := strconv.ParseBool(strVal); err == nil {
		return val
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	strVal := getEnv(key, "")
	if val, err := strconv.ParseInt(strVal, 10, 64); err == nil {
		return val
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	strVal := getEnv(key, "")
	if val, err := time.ParseDuration(strVal); err == nil {
		return val
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	val := getEnv(key, "")
	if val == "" {
		return defaultValue
	}
	parts := strings.Split(val, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return parts
}
