// Package metadata stores small named string values in the local client
// database. The session tokens live here.
package metadata

import (
	"context"
)

// Repository is a string key/value store.
//
// Get reports ok == false when the key is absent; that is not an error.
type Repository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error
}
