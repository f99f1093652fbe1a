package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrMissingSigner indicates signed URL support is not configured.
var ErrMissingSigner = errors.New("storage: signed url signer not configured")

// Storage defines the object store operations used for uploaded files.
type Storage interface {
	io.Closer

	// PutObject stores data and returns object metadata.
	PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error)
	// GetObject retrieves data and metadata for the object.
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error)
	// DeleteObject removes the object.
	DeleteObject(ctx context.Context, bucket, key string) error
	// PresignGet returns a time-limited signed URL for downloading.
	PresignGet(ctx context.Context, bucket, key string, expiry time.Duration) (string, error)
}

// PutOptions configures upload behavior.
type PutOptions struct {
	// Size is the expected content length.
	Size int64
	// ContentType is the MIME type for the object.
	ContentType string
	// Metadata includes custom key/value metadata.
	Metadata map[string]string
}

// ObjectInfo describes object metadata.
type ObjectInfo struct {
	// Bucket is the bucket name.
	Bucket string
	// Key is the object key.
	Key string
	// Size is the object size in bytes.
	Size int64
	// ETag is the object ETag when provided.
	ETag string
	// ContentType is the object MIME type.
	ContentType string
	// Metadata is user-defined metadata.
	Metadata map[string]string
	// UpdatedAt is the last modified time.
	UpdatedAt time.Time
}
