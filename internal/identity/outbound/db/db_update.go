package db

import (
	"context"
	"time"

	"github.com/designdynasty/authkit/internal/identity/entity"
	"github.com/designdynasty/authkit/internal/pkg/goerror"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MarkOtpUsed flips a pending record to used. The status guard in the
// filter makes the transition a compare-and-swap; a false return means a
// concurrent request consumed the record first.
func (s *DB) MarkOtpUsed(ctx context.Context, id string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "MarkOtpUsed")
	defer func() { s.endSpan(span, err) }()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, goerror.ErrNotFound
	}

	result, err := s.otps.UpdateOne(ctx,
		bson.M{"_id": oid, "status": entity.OtpStatusPending.String()},
		bson.M{"$set": bson.M{"status": entity.OtpStatusUsed.String()}},
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return result.MatchedCount > 0, nil
}

func (s *DB) MarkOtpExpired(ctx context.Context, id string) (err error) {
	ctx, span := s.startSpan(ctx, "MarkOtpExpired")
	defer func() { s.endSpan(span, err) }()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return goerror.ErrNotFound
	}

	_, err = s.otps.UpdateOne(ctx,
		bson.M{"_id": oid, "status": entity.OtpStatusPending.String()},
		bson.M{"$set": bson.M{"status": entity.OtpStatusExpired.String()}},
	)
	return s.mapError(err)
}

func (s *DB) UpdateUserPassword(ctx context.Context, email, passwordHash string) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserPassword")
	defer func() { s.endSpan(span, err) }()

	result, err := s.users.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{
			"password_hash": passwordHash,
			"updated_at":    time.Now().UTC(),
		}},
	)
	if err != nil {
		return false, s.mapError(err)
	}

	return result.MatchedCount > 0, nil
}
