package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// DriverS3 names the AWS S3 backend.
	DriverS3 = "s3"
	// DriverGCS names the Google Cloud Storage backend.
	DriverGCS = "gcs"
	// DriverMinIO names the MinIO backend.
	DriverMinIO = "minio"
)

// ErrUnknownDriver is returned for a driver name no backend matches.
var ErrUnknownDriver = errors.New("storage: unknown driver")

// FactoryOptions carries the per-backend settings. Only the section for the
// selected driver is read.
type FactoryOptions struct {
	// S3 holds S3 backend settings.
	S3 S3Options
	// GCS holds Google Cloud Storage backend settings.
	GCS GCSOptions
	// MinIO holds MinIO backend settings.
	MinIO MinIOOptions
}

// NewFromDriver builds the Storage backend for the given driver name. The
// name is matched case-insensitively.
func NewFromDriver(ctx context.Context, driver string, opts FactoryOptions) (Storage, error) {
	switch strings.ToLower(driver) {
	case DriverS3:
		return NewS3(ctx, opts.S3)
	case DriverGCS:
		return NewGCS(ctx, opts.GCS)
	case DriverMinIO:
		return NewMinIO(opts.MinIO)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
