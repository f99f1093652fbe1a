package db

import (
	"time"

	"github.com/designdynasty/authkit/internal/identity/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	Mobile       string             `bson:"mobile"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d userDoc) toEntity() entity.User {
	return entity.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		Mobile:       d.Mobile,
		PasswordHash: d.PasswordHash,
		Role:         entity.Role(d.Role),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type otpDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Name      string             `bson:"name"`
	Mobile    string             `bson:"mobile"`
	Code      string             `bson:"otp"`
	Status    string             `bson:"status"`
	ExpiresAt time.Time          `bson:"expires_at"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (d otpDoc) toEntity() entity.OtpRecord {
	return entity.OtpRecord{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Name:      d.Name,
		Mobile:    d.Mobile,
		Code:      d.Code,
		Status:    entity.OtpStatus(d.Status),
		ExpiresAt: d.ExpiresAt,
		CreatedAt: d.CreatedAt,
	}
}
