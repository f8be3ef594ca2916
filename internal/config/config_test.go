package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "STORE_DRIVER", "STORE_KEY", "GEMINI_API_KEY", "API_KEY", "KAFKA_BROKERS", "S3_PATH_STYLE", "CACHE_DRIVER"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "file", cfg.StoreDriver)
	assert.Equal(t, "lumina_shop_db_v7", cfg.StoreKey)
	assert.Equal(t, "lumina_current_user", cfg.SessionKeyPrefix)
	assert.Equal(t, "lumina_cart", cfg.CartKeyPrefix)
	assert.Equal(t, "memory", cfg.CacheDriver)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.False(t, cfg.S3PathStyle)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("API_KEY", "legacy-key")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("KAFKA_BROKERS", "k1:9092, ,k2:9092")
	t.Setenv("S3_PATH_STYLE", "true")

	cfg := Load()

	assert.Equal(t, "redis", cfg.StoreDriver)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "legacy-key", cfg.GeminiAPIKey)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.S3PathStyle)
}

func TestGetEnvInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	assert.Equal(t, 0, getEnvInt("REDIS_DB", 0))
}
