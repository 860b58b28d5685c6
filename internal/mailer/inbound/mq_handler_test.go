package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/goproof/internal/mailer/usecase"
	"github.com/shandysiswandi/goproof/internal/pkg/instrument"
	"github.com/shandysiswandi/goproof/internal/pkg/messaging"
	"github.com/shandysiswandi/goproof/internal/shared/event"
)

type fakeUC struct {
	consumed   []usecase.ConsumePasscodeEmailInput
	consumeErr error
	gotCID     string
}

func (f *fakeUC) ConsumePasscodeEmail(ctx context.Context, in usecase.ConsumePasscodeEmailInput) error {
	f.gotCID = instrument.GetCorrelationID(ctx)
	f.consumed = append(f.consumed, in)
	return f.consumeErr
}

func (f *fakeUC) DeliveryList(context.Context, usecase.DeliveryListInput) (*usecase.DeliveryListOutput, error) {
	return nil, errors.New("not used")
}

func (f *fakeUC) DeliveryDetail(context.Context, usecase.DeliveryDetailInput) (*usecase.DeliveryDetailOutput, error) {
	return nil, errors.New("not used")
}

func (f *fakeUC) DeliveryStats(context.Context) (*usecase.DeliveryStatsOutput, error) {
	return nil, errors.New("not used")
}

type fakeMessage struct {
	body    []byte
	headers []messaging.Header
}

func (m *fakeMessage) Body() []byte                  { return m.body }
func (m *fakeMessage) Key() []byte                   { return nil }
func (m *fakeMessage) Headers() []messaging.Header   { return m.headers }
func (m *fakeMessage) Attributes() map[string]string { return nil }
func (m *fakeMessage) ID() string                    { return "" }
func (m *fakeMessage) Topic() string                 { return event.PasscodeEmailDestination }
func (m *fakeMessage) Subject() string               { return event.PasscodeEmailDestination }
func (m *fakeMessage) Timestamp() time.Time          { return time.Time{} }
func (m *fakeMessage) Ack(context.Context) error     { return nil }

type fakeStringID struct{}

func (fakeStringID) Generate() string { return "generated-cid" }

func TestMQHandler_PasscodeEmailDelivery(t *testing.T) {
	payload := event.PasscodeEmailMessage{
		EventID: "evt-1",
		OwnerID: "u1",
		Email:   "a@b.io",
		Purpose: 1,
		Subject: "Verify your email address",
		Body:    "Your verification code is 482913.",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	t.Run("dispatches the event to the usecase", func(t *testing.T) {
		uc := &fakeUC{}
		h := &MQHandler{uc: uc, uuid: fakeStringID{}, ins: instrument.NewNoop()}

		msg := &fakeMessage{
			body:    body,
			headers: []messaging.Header{{Key: "cID", Value: []byte("abc-123")}},
		}
		if err := h.PasscodeEmailDelivery(context.Background(), msg); err != nil {
			t.Fatalf("PasscodeEmailDelivery() error = %v", err)
		}

		if len(uc.consumed) != 1 {
			t.Fatalf("consumed = %d, want 1", len(uc.consumed))
		}
		in := uc.consumed[0]
		if in.EventID != "evt-1" || in.Email != "a@b.io" || in.Subject != payload.Subject {
			t.Fatalf("usecase input = %+v, want event fields", in)
		}
		if uc.gotCID != "abc-123" {
			t.Fatalf("correlation id = %q, want propagated %q", uc.gotCID, "abc-123")
		}
	})

	t.Run("generates a correlation id when the header is missing", func(t *testing.T) {
		uc := &fakeUC{}
		h := &MQHandler{uc: uc, uuid: fakeStringID{}, ins: instrument.NewNoop()}

		if err := h.PasscodeEmailDelivery(context.Background(), &fakeMessage{body: body}); err != nil {
			t.Fatalf("PasscodeEmailDelivery() error = %v", err)
		}
		if uc.gotCID != "generated-cid" {
			t.Fatalf("correlation id = %q, want generated", uc.gotCID)
		}
	})

	t.Run("drops unparsable payloads", func(t *testing.T) {
		uc := &fakeUC{}
		h := &MQHandler{uc: uc, uuid: fakeStringID{}, ins: instrument.NewNoop()}

		if err := h.PasscodeEmailDelivery(context.Background(), &fakeMessage{body: []byte("{broken")}); err != nil {
			t.Fatalf("PasscodeEmailDelivery() error = %v, want nil for a poison message", err)
		}
		if len(uc.consumed) != 0 {
			t.Fatal("unparsable payload reached the usecase")
		}
	})

	t.Run("propagates usecase failure for redelivery", func(t *testing.T) {
		uc := &fakeUC{consumeErr: errors.New("connection refused")}
		h := &MQHandler{uc: uc, uuid: fakeStringID{}, ins: instrument.NewNoop()}

		if err := h.PasscodeEmailDelivery(context.Background(), &fakeMessage{body: body}); err == nil {
			t.Fatal("PasscodeEmailDelivery() error = nil, want usecase failure")
		}
	})
}
