package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/goproof/internal/passcode/usecase"
	"github.com/shandysiswandi/goproof/internal/pkg/instrument"
	"github.com/shandysiswandi/goproof/internal/pkg/messaging"
	"github.com/shandysiswandi/goproof/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishPasscodeEmail(ctx context.Context, msg usecase.PasscodeEmailEvent) error {
	ctx, span := m.ins.Tracer("passcode.outbound.mq").Start(ctx, "PublishPasscodeEmail")
	defer span.End()

	body, err := json.Marshal(event.PasscodeEmailMessage{
		EventID:  msg.EventID,
		OwnerID:  msg.OwnerID,
		Email:    msg.Email,
		Purpose:  int16(msg.Purpose),
		Subject:  msg.Subject,
		Body:     msg.Body,
		IssuedAt: msg.IssuedAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.PasscodeEmailDestination, messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(msg.OwnerID),
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

func (m *Messaging) PublishPasscodeVerified(ctx context.Context, msg usecase.PasscodeVerifiedEvent) error {
	ctx, span := m.ins.Tracer("passcode.outbound.mq").Start(ctx, "PublishPasscodeVerified")
	defer span.End()

	body, err := json.Marshal(event.PasscodeVerifiedMessage{
		EventID:    msg.EventID,
		OwnerID:    msg.OwnerID,
		Email:      msg.Email,
		Purpose:    int16(msg.Purpose),
		VerifiedAt: msg.VerifiedAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, event.PasscodeVerifiedDestination, messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(msg.OwnerID),
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
