package files

import "context"

// ContentStore keeps blob bytes outside the record collection (object storage).
type ContentStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Fetch(ctx context.Context, key string) ([]byte, error)
	PresignedURL(ctx context.Context, key string) (string, error)
	Remove(ctx context.Context, key string) error
}
