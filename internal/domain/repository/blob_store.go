package repository

import (
	"context"
	"time"
)

// BlobStore define el puerto hacia el almacenamiento de objetos (imágenes de leads).
type BlobStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) error
	// SignedURL genera una URL temporal de acceso al objeto con la vigencia dada.
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}
