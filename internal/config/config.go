package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	SwaggerHost string
	JWTSecret   string

	// Persistence substrate selection and the keys the store and sessions write under.
	StoreDriver      string
	StoreKey         string
	SessionKeyPrefix string
	CartKeyPrefix    string
	DataDir          string
	MySQLDSN         string
	SQLitePath       string
	PostgresDSN      string
	S3Bucket         string
	S3Region         string
	S3Endpoint       string
	S3PathStyle      bool

	// CacheDriver selects where refresh grants and revoked token ids live: memory|redis.
	CacheDriver string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	GeminiAPIKey     string
	GeminiTextModel  string
	GeminiImageModel string

	KafkaBrokers []string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		SwaggerHost:      os.Getenv("SWAGGER_HOST"),
		JWTSecret:        getEnv("JWT_SECRET", "change-me"),
		StoreDriver:      getEnv("STORE_DRIVER", "file"),
		StoreKey:         getEnv("STORE_KEY", "lumina_shop_db_v7"),
		SessionKeyPrefix: getEnv("SESSION_KEY_PREFIX", "lumina_current_user"),
		CartKeyPrefix:    getEnv("CART_KEY_PREFIX", "lumina_cart"),
		DataDir:          getEnv("DATA_DIR", "./data"),
		MySQLDSN:         getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/app?charset=utf8mb4&parseTime=True&loc=Local"),
		SQLitePath:       getEnv("SQLITE_PATH", "./data/storefront.db"),
		PostgresDSN:      getEnv("POSTGRES_DSN", "postgres://localhost/storefront?sslmode=disable"),
		S3Bucket:         os.Getenv("S3_BUCKET"),
		S3Region:         getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:       os.Getenv("S3_ENDPOINT"),
		S3PathStyle:      getEnvBool("S3_PATH_STYLE", false),
		CacheDriver:      getEnv("CACHE_DRIVER", "memory"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		RedisPass:        os.Getenv("REDIS_PASSWORD"),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		GeminiTextModel:  getEnv("GEMINI_TEXT_MODEL", "gemini-3-flash-preview"),
		GeminiImageModel: getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		KafkaBrokers:     getEnvList("KAFKA_BROKERS"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

// getEnvList splits a comma separated variable, dropping empty entries.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
