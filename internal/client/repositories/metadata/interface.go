// Package metadata is a small key/value repository over the local SQLite
// "metadata" table. Values are opaque bytes; a missing key reads as nil.
package metadata

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
