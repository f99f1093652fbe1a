package storage

import (
	"context"
	"io"
	"time"

	gcs "cloud.google.com/go/storage"
)

// GCSAdapter implements Storage using Google Cloud Storage.
type GCSAdapter struct {
	client *gcs.Client
	signer *GCSSigner
}

// GCSOptions configures GCS client initialization.
type GCSOptions struct {
	// Client provides an existing GCS client.
	Client *gcs.Client
	// GoogleAccessID is the service account access ID for signing.
	GoogleAccessID string
	// PrivateKey is the service account private key for signing.
	PrivateKey []byte
}

// GCSSigner holds credentials for signed URL generation.
type GCSSigner struct {
	// GoogleAccessID is the service account access ID.
	GoogleAccessID string
	// PrivateKey is the service account private key.
	PrivateKey []byte
}

// NewGCS constructs a GCS adapter with optional signing support.
func NewGCS(ctx context.Context, opts GCSOptions) (*GCSAdapter, error) {
	client := opts.Client
	if client == nil {
		created, err := gcs.NewClient(ctx)
		if err != nil {
			return nil, err
		}
		client = created
	}

	var signer *GCSSigner
	if opts.GoogleAccessID != "" && len(opts.PrivateKey) > 0 {
		signer = &GCSSigner{
			GoogleAccessID: opts.GoogleAccessID,
			PrivateKey:     opts.PrivateKey,
		}
	}

	return &GCSAdapter{client: client, signer: signer}, nil
}

// PutObject stores data in GCS and returns metadata.
func (g *GCSAdapter) PutObject(ctx context.Context, bucket, key string, r io.Reader, opts PutOptions) (ObjectInfo, error) {
	obj := g.client.Bucket(bucket).Object(key)

	writer := obj.NewWriter(ctx)
	if opts.ContentType != "" {
		writer.ContentType = opts.ContentType
	}
	if len(opts.Metadata) > 0 {
		writer.Metadata = opts.Metadata
	}

	if _, err := io.Copy(writer, r); err != nil {
		if closeErr := writer.Close(); closeErr != nil {
			return ObjectInfo{}, closeErr
		}
		return ObjectInfo{}, err
	}
	if err := writer.Close(); err != nil {
		return ObjectInfo{}, err
	}

	attrs := writer.Attrs()
	if attrs == nil {
		return ObjectInfo{
			Bucket:      bucket,
			Key:         key,
			Size:        opts.Size,
			ContentType: opts.ContentType,
			Metadata:    opts.Metadata,
		}, nil
	}
	return gcsAttrsToInfo(attrs), nil
}

// GetObject retrieves data and metadata from GCS.
func (g *GCSAdapter) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, ObjectInfo, error) {
	obj := g.client.Bucket(bucket).Object(key)

	reader, err := obj.NewReader(ctx)
	if err != nil {
		return nil, ObjectInfo{}, err
	}

	attrs, err := obj.Attrs(ctx)
	if err != nil {
		if closeErr := reader.Close(); closeErr != nil {
			return nil, ObjectInfo{}, closeErr
		}
		return nil, ObjectInfo{}, err
	}

	return reader, gcsAttrsToInfo(attrs), nil
}

// DeleteObject removes an object from GCS.
func (g *GCSAdapter) DeleteObject(ctx context.Context, bucket, key string) error {
	return g.client.Bucket(bucket).Object(key).Delete(ctx)
}

// PresignGet returns a signed URL for downloading from GCS.
func (g *GCSAdapter) PresignGet(_ context.Context, bucket, key string, expiry time.Duration) (string, error) {
	if g.signer == nil {
		return "", ErrMissingSigner
	}
	return gcs.SignedURL(bucket, key, &gcs.SignedURLOptions{
		Method:         "GET",
		Expires:        time.Now().Add(expiry),
		GoogleAccessID: g.signer.GoogleAccessID,
		PrivateKey:     g.signer.PrivateKey,
	})
}

// Close closes the GCS client.
func (g *GCSAdapter) Close() error {
	return g.client.Close()
}

func gcsAttrsToInfo(attrs *gcs.ObjectAttrs) ObjectInfo {
	if attrs == nil {
		return ObjectInfo{}
	}
	return ObjectInfo{
		Bucket:      attrs.Bucket,
		Key:         attrs.Name,
		Size:        attrs.Size,
		ETag:        attrs.Etag,
		ContentType: attrs.ContentType,
		Metadata:    attrs.Metadata,
		UpdatedAt:   attrs.Updated,
	}
}
