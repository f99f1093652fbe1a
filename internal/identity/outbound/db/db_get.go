package db

import (
	"context"

	"github.com/designdynasty/authkit/internal/identity/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	var doc userDoc
	if err = s.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc); err != nil {
		return nil, s.mapError(err)
	}

	user := doc.toEntity()
	return &user, nil
}

func (s *DB) GetUserList(ctx context.Context) (_ []entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserList")
	defer func() { s.endSpan(span, err) }()

	cursor, err := s.users.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, s.mapError(err)
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, s.mapError(err)
	}

	users := make([]entity.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toEntity())
	}
	return users, nil
}

func (s *DB) GetLatestPendingOtp(ctx context.Context, email string) (_ *entity.OtpRecord, err error) {
	ctx, span := s.startSpan(ctx, "GetLatestPendingOtp")
	defer func() { s.endSpan(span, err) }()

	var doc otpDoc
	err = s.otps.FindOne(ctx,
		bson.M{"email": email, "status": entity.OtpStatusPending.String()},
		options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	).Decode(&doc)
	if err != nil {
		return nil, s.mapError(err)
	}

	record := doc.toEntity()
	return &record, nil
}
