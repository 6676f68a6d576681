package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/shandysiswandi/otpgate/internal/identity/usecase"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/messaging"
	"github.com/shandysiswandi/otpgate/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishUserRegistered(ctx context.Context, msg usecase.UserRegisteredEvent) error {
	return m.publish(ctx, "PublishUserRegistered", event.UserRegisteredTopic, msg.UserID, event.UserRegisteredMessage{
		UserID: msg.UserID,
		Email:  msg.Email,
		Name:   msg.Name,
	})
}

func (m *Messaging) PublishUserPasswordChanged(ctx context.Context, msg usecase.UserPasswordChangedEvent) error {
	return m.publish(ctx, "PublishUserPasswordChanged", event.UserPasswordChangedTopic, msg.UserID, event.UserPasswordChangedMessage{
		UserID: msg.UserID,
		Email:  msg.Email,
	})
}

// publish keys the message by user id so Kafka keeps one user's events ordered.
func (m *Messaging) publish(ctx context.Context, op, topic string, userID int64, payload any) error {
	ctx, span := m.ins.Tracer("identity.outbound.mq").Start(ctx, op)
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := m.client.Publish(ctx, topic, messaging.OutgoingMessage{
		Key:     strconv.FormatInt(userID, 10),
		Body:    body,
		Headers: map[string]string{keyOfCorrelationID: instrument.GetCorrelationID(ctx)},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
