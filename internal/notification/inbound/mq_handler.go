package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/designdynasty/authkit/internal/notification/usecase"
	"github.com/designdynasty/authkit/internal/pkg/instrument"
	"github.com/designdynasty/authkit/internal/pkg/messaging"
	"github.com/designdynasty/authkit/internal/pkg/uid"
	"github.com/designdynasty/authkit/internal/shared/event"
)

const keyOfCorrelationID string = "cID"

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, headers []messaging.Header) context.Context {
	for i := range headers {
		if headers[i].Key == keyOfCorrelationID {
			return instrument.SetCorrelationID(ctx, string(headers[i].Value))
		}
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

func (h *MQHandler) UserRegisteredNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "UserRegisteredNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: user registered notification", "msg_body", string(body))

	var payload event.UserRegisteredMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of user registered notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeUserRegistered(ctx, usecase.ConsumeUserRegisteredInput{
		EventID:      payload.EventID,
		UserID:       payload.UserID,
		Email:        payload.Email,
		Name:         payload.Name,
		Mobile:       payload.Mobile,
		RegisteredAt: payload.RegisteredAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume user registered", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}

func (h *MQHandler) UserLoggedInNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "UserLoggedInNotification")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: user logged in notification", "msg_body", string(body))

	var payload event.UserLoggedInMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of user logged in notification", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumeUserLoggedIn(ctx, usecase.ConsumeUserLoggedInInput{
		EventID:  payload.EventID,
		UserID:   payload.UserID,
		Email:    payload.Email,
		Name:     payload.Name,
		LoggedAt: payload.LoggedAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume user logged in", "msg_body", string(body), "error", err)
		return err
	}

	return nil
}
