// Package substrate provides the key/blob storage the domain store and
// session state persist into. Every backend stores whole values under a key;
// there are no partial writes and no transactions across keys.
package substrate

import (
	"context"
	"errors"
)

// Driver identifies a concrete substrate backend.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverFile     Driver = "file"
	DriverRedis    Driver = "redis"
	DriverMySQL    Driver = "mysql"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverS3       Driver = "s3"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("substrate: key not found")

// Substrate is a synchronous key to blob store.
type Substrate interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Driver() Driver
	Close() error
}
