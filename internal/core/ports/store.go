package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by KeyValue.Get when a key has never been set
// or was deleted.
var ErrKeyNotFound = errors.New("key not found")

// KeyValue is the durable client-side store behind the session cache. It is
// an explicit object injected into services rather than ambient state, so
// concurrent-terminal races and test seams stay visible.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error

	// Update applies fn to the current value of key (empty string when the
	// key is absent) and stores the result as one atomic read-modify-write.
	// If fn returns an error nothing is written and the error is returned.
	Update(ctx context.Context, key string, fn func(current string) (string, error)) error

	// Clear removes everything. Used at logout.
	Clear(ctx context.Context) error

	Ping(ctx context.Context) error
}
