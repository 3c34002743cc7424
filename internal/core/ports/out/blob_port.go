package out

import "context"

// BlobPort is a key-value backend holding serialized values.
type BlobPort interface {
	// Get returns the stored value and false when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
