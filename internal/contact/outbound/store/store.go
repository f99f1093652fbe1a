package store

import (
	"bytes"
	"context"
	"time"

	"github.com/designdynasty/authkit/internal/contact/entity"
	"github.com/designdynasty/authkit/internal/pkg/instrument"
	"github.com/designdynasty/authkit/internal/pkg/storage"
	"go.opentelemetry.io/otel/codes"
)

// Store keeps contact attachments in object storage.
type Store struct {
	client storage.Storage
	bucket string
	expiry time.Duration
	ins    instrument.Instrumentation
}

func New(client storage.Storage, bucket string, expiry time.Duration, ins instrument.Instrumentation) *Store {
	if expiry <= 0 {
		expiry = 7 * 24 * time.Hour
	}
	return &Store{client: client, bucket: bucket, expiry: expiry, ins: ins}
}

// StoreAttachment uploads the file and returns a presigned download link.
func (s *Store) StoreAttachment(ctx context.Context, key string, att entity.Attachment) (_ string, err error) {
	ctx, span := s.ins.Tracer("contact.outbound.store").Start(ctx, "StoreAttachment")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	_, err = s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(att.Content), storage.PutOptions{
		Size:        int64(len(att.Content)),
		ContentType: att.ContentType,
	})
	if err != nil {
		return "", err
	}

	return s.client.PresignGet(ctx, s.bucket, key, s.expiry)
}
