package db

import (
	"context"
	"errors"

	"github.com/designdynasty/authkit/internal/pkg/goerror"
	"github.com/designdynasty/authkit/internal/pkg/instrument"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	collUsers = "users"
	collOtps  = "otps"
)

type DB struct {
	users *mongo.Collection
	otps  *mongo.Collection
	ins   instrument.Instrumentation
}

func NewDB(database *mongo.Database, ins instrument.Instrumentation) *DB {
	return &DB{
		users: database.Collection(collUsers),
		otps:  database.Collection(collOtps),
		ins:   ins,
	}
}

// EnsureIndexes creates the unique email index so duplicate registrations
// fail at the store instead of racing a read-then-insert.
func (s *DB) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (s *DB) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return goerror.ErrNotFound
	}

	if mongo.IsDuplicateKeyError(err) {
		return goerror.ErrConflict
	}

	return err
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) && !errors.Is(err, goerror.ErrConflict) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
