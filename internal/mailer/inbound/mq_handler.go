package inbound

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/shandysiswandi/goproof/internal/mailer/usecase"
	"github.com/shandysiswandi/goproof/internal/pkg/instrument"
	"github.com/shandysiswandi/goproof/internal/pkg/messaging"
	"github.com/shandysiswandi/goproof/internal/pkg/uid"
	"github.com/shandysiswandi/goproof/internal/shared/event"
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

// PasscodeEmailDelivery consumes one passcode email event. The logged body
// passes through the mask layer, which blanks the rendered email text, so
// the passcode itself never lands in a log line.
func (h *MQHandler) PasscodeEmailDelivery(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg.Headers())

	ctx, span := h.ins.Tracer("mailer.inbound.mq").Start(ctx, "PasscodeEmailDelivery")
	defer span.End()

	body := msg.Body()
	slog.InfoContext(ctx, "consume: passcode email", "msg_body", string(body))

	var payload event.PasscodeEmailMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of passcode email", "msg_body", string(body), "error", err)
		return nil
	}

	if err := h.uc.ConsumePasscodeEmail(ctx, usecase.ConsumePasscodeEmailInput{
		EventID:  payload.EventID,
		OwnerID:  payload.OwnerID,
		Email:    payload.Email,
		Purpose:  payload.Purpose,
		Subject:  payload.Subject,
		Body:     payload.Body,
		IssuedAt: payload.IssuedAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to consume passcode email", "event_id", payload.EventID, "error", err)
		return err
	}

	return nil
}
