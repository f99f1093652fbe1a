package mq

import (
	"context"
	"encoding/json"

	"github.com/designdynasty/authkit/internal/identity/usecase"
	"github.com/designdynasty/authkit/internal/pkg/instrument"
	"github.com/designdynasty/authkit/internal/pkg/messaging"
	"github.com/designdynasty/authkit/internal/pkg/uid"
	"github.com/designdynasty/authkit/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	uuid   uid.StringID
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, uuid uid.StringID, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, uuid: uuid, ins: ins}
}

func (m *Messaging) PublishUserRegistered(ctx context.Context, msg usecase.UserRegisteredEvent) error {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, "PublishUserRegistered")
	defer span.End()

	body, err := json.Marshal(event.UserRegisteredMessage{
		EventID:      m.uuid.Generate(),
		UserID:       msg.UserID,
		Email:        msg.Email,
		Name:         msg.Name,
		Mobile:       msg.Mobile,
		RegisteredAt: msg.RegisteredAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.UserRegisteredDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishUserLoggedIn(ctx context.Context, msg usecase.UserLoggedInEvent) error {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, "PublishUserLoggedIn")
	defer span.End()

	body, err := json.Marshal(event.UserLoggedInMessage{
		EventID:  m.uuid.Generate(),
		UserID:   msg.UserID,
		Email:    msg.Email,
		Name:     msg.Name,
		LoggedAt: msg.LoggedAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.UserLoggedInDestination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
