package substrate

import (
	"context"
	"fmt"

	"storefront/internal/config"
)

// Open selects a substrate implementation from configuration.
//
//	STORE_DRIVER: memory|file|redis|mysql|sqlite|postgres|s3 (default file)
func Open(ctx context.Context, cfg *config.Config) (Substrate, error) {
	switch Driver(cfg.StoreDriver) {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile, "":
		return NewFile(cfg.DataDir)
	case DriverRedis:
		r := NewRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := r.client.Ping(ctx).Err(); err != nil {
			_ = r.Close()
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		return r, nil
	case DriverMySQL:
		return NewMySQL(cfg.MySQLDSN)
	case DriverSQLite:
		return NewSQLite(cfg.SQLitePath)
	case DriverPostgres:
		return NewPostgres(ctx, cfg.PostgresDSN)
	case DriverS3:
		return NewS3(ctx, S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PathStyle: cfg.S3PathStyle,
		})
	default:
		return nil, fmt.Errorf("unknown store driver %s", cfg.StoreDriver)
	}
}
