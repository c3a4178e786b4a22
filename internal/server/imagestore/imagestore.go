// Package imagestore stores profile images in an S3-compatible object store.
package imagestore

import "context"

// Store saves and removes image blobs. Put returns the storage key and the
// public URL the client can fetch the image from.
type Store interface {
	Put(ctx context.Context, data []byte, contentType string) (key string, url string, err error)
	Delete(ctx context.Context, key string) error
}
