package port

import "context"

// ObjectStore reads and writes whole objects, e.g. dataset uploads kept in a
// bucket.
type ObjectStore interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	Put(ctx context.Context, bucket, key string, data []byte, contentType string) error
}
