package db

import (
	"context"
	"time"

	"github.com/designdynasty/authkit/internal/identity/entity"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *DB) CreateUser(ctx context.Context, in entity.NewUser) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	now := time.Now().UTC()
	doc := userDoc{
		Name:         in.Name,
		Email:        in.Email,
		Mobile:       in.Mobile,
		PasswordHash: in.PasswordHash,
		Role:         in.Role.Ensure().String(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	result, err := s.users.InsertOne(ctx, doc)
	if err != nil {
		return nil, s.mapError(err)
	}

	doc.ID = insertedObjectID(result)
	user := doc.toEntity()
	return &user, nil
}

func (s *DB) CreateOtp(ctx context.Context, in entity.NewOtp) (_ *entity.OtpRecord, err error) {
	ctx, span := s.startSpan(ctx, "CreateOtp")
	defer func() { s.endSpan(span, err) }()

	doc := otpDoc{
		Email:     in.Email,
		Name:      in.Name,
		Mobile:    in.Mobile,
		Code:      in.Code,
		Status:    entity.OtpStatusPending.String(),
		ExpiresAt: in.ExpiresAt,
		CreatedAt: time.Now().UTC(),
	}

	result, err := s.otps.InsertOne(ctx, doc)
	if err != nil {
		return nil, s.mapError(err)
	}

	doc.ID = insertedObjectID(result)
	record := doc.toEntity()
	return &record, nil
}

func insertedObjectID(result *mongo.InsertOneResult) primitive.ObjectID {
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		return oid
	}
	return primitive.NilObjectID
}
