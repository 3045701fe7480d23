package cache

import (
	"context"
	"errors"
)

var ErrStoreRequired = errors.New("cache: store is required")

// Store is the persistence collaborator. Get reports ok=false for a missing
// key; Delete of a missing key is not an error. Implementations must be safe
// for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
