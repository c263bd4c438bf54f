package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr string

	OTLPEndpoint string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Calculation API rate limiting. Disabled unless redis is configured
	// and RateLimitEnabled is set.
	RateLimitEnabled       bool
	RateLimitClientRate    float64
	RateLimitClientBurst   int
	RateLimitEndpointRate  float64
	RateLimitEndpointBurst int

	// SeedLockTTLSeconds bounds the distributed lock held while one
	// instance seeds reference data.
	SeedLockTTLSeconds int

	// RemoteFeeAPIBaseURL points at the legacy V1 fee calculation backend.
	// Empty disables the remote client.
	RemoteFeeAPIBaseURL string

	// DefaultRegion is the reference jurisdiction used when a caller asks
	// for a region the rate tables do not know.
	DefaultRegion string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		AppName:     getenv("APP_SERVICE", "packlane"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),

		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		OTLPEndpoint: getenv("OTLP_ENDPOINT", "localhost:4317"),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "packlane"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", "postgres"),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		DBConnMaxIdleTime: getenvInt("DATABASE_CONN_MAX_IDLE_TIME", 60),

		RedisAddr:     strings.TrimSpace(getenv("REDIS_ADDR", "")),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("REDIS_DB", 0),

		RateLimitEnabled:       getenvBool("RATE_LIMIT_ENABLED", false),
		RateLimitClientRate:    getenvFloat("RATE_LIMIT_CLIENT_RATE", 20),
		RateLimitClientBurst:   getenvInt("RATE_LIMIT_CLIENT_BURST", 40),
		RateLimitEndpointRate:  getenvFloat("RATE_LIMIT_ENDPOINT_RATE", 200),
		RateLimitEndpointBurst: getenvInt("RATE_LIMIT_ENDPOINT_BURST", 400),

		SeedLockTTLSeconds: getenvInt("SEED_LOCK_TTL_SECONDS", 60),

		RemoteFeeAPIBaseURL: strings.TrimSpace(getenv("REMOTE_FEE_API_URL", "")),

		DefaultRegion: getenv("DEFAULT_REGION", "oregon"),
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
