package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/goproof/internal/mailer/entity"
	"github.com/shandysiswandi/goproof/internal/pkg/idempotency"
)

func validInput() ConsumePasscodeEmailInput {
	return ConsumePasscodeEmailInput{
		EventID:  "evt-1",
		OwnerID:  "u1",
		Email:    "a@b.io",
		Purpose:  int16(entity.PurposeSignupVerification),
		Subject:  "Verify your email address",
		Body:     "Your verification code is 482913.",
		IssuedAt: testStart,
	}
}

func TestUsecase_ConsumePasscodeEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("records and sends one email", func(t *testing.T) {
		f := newFixture(t)

		if err := f.uc.ConsumePasscodeEmail(ctx, validInput()); err != nil {
			t.Fatalf("ConsumePasscodeEmail() error = %v", err)
		}

		if len(f.mail.sent) != 1 {
			t.Fatalf("sent = %d, want 1", len(f.mail.sent))
		}
		msg := f.mail.sent[0]
		if len(msg.To) != 1 || msg.To[0] != "a@b.io" {
			t.Fatalf("message to = %v, want [a@b.io]", msg.To)
		}
		if msg.Subject != "Verify your email address" {
			t.Fatalf("message subject = %q", msg.Subject)
		}

		if len(f.db.deliveries) != 1 {
			t.Fatalf("delivery rows = %d, want 1", len(f.db.deliveries))
		}
		for _, row := range f.db.deliveries {
			if row.Status != entity.DeliveryStatusSent {
				t.Fatalf("delivery status = %v, want sent", row.Status)
			}
			if row.Attempts != 1 {
				t.Fatalf("delivery attempts = %d, want 1", row.Attempts)
			}
		}

		stats, err := f.uc.DeliveryStats(ctx)
		if err != nil {
			t.Fatalf("DeliveryStats() error = %v", err)
		}
		if stats.Consumed != 1 || stats.Sent != 1 || stats.Failed != 0 {
			t.Fatalf("stats = %+v, want one consumed and sent", stats)
		}
	})

	t.Run("duplicate event sends nothing", func(t *testing.T) {
		f := newFixture(t)

		if err := f.uc.ConsumePasscodeEmail(ctx, validInput()); err != nil {
			t.Fatalf("first consume error = %v", err)
		}
		if err := f.uc.ConsumePasscodeEmail(ctx, validInput()); err != nil {
			t.Fatalf("duplicate consume error = %v, want nil so the bus does not redeliver", err)
		}

		if len(f.mail.sent) != 1 {
			t.Fatalf("sent = %d, want 1 despite redelivery", len(f.mail.sent))
		}

		stats, err := f.uc.DeliveryStats(ctx)
		if err != nil {
			t.Fatalf("DeliveryStats() error = %v", err)
		}
		if stats.Duplicates != 1 {
			t.Fatalf("duplicates = %d, want 1", stats.Duplicates)
		}
	})

	t.Run("unique index backstops the tracker", func(t *testing.T) {
		f := newFixture(t)

		if err := f.uc.ConsumePasscodeEmail(ctx, validInput()); err != nil {
			t.Fatalf("first consume error = %v", err)
		}

		// A second replica whose tracker state has expired sees the same
		// event; the event_id unique index still blocks a double send.
		f.idemp.states = map[string]idempotency.State{}

		if err := f.uc.ConsumePasscodeEmail(ctx, validInput()); err != nil {
			t.Fatalf("replayed consume error = %v, want nil", err)
		}

		if len(f.mail.sent) != 1 {
			t.Fatalf("sent = %d, want 1 despite expired tracker state", len(f.mail.sent))
		}
	})
}

func TestUsecase_ConsumePasscodeEmail_RetriesThenSends(t *testing.T) {
	f := newFixture(t)
	f.mail.failures = 2
	f.mail.err = errors.New("451 temporary failure")

	if err := f.uc.ConsumePasscodeEmail(context.Background(), validInput()); err != nil {
		t.Fatalf("ConsumePasscodeEmail() error = %v", err)
	}

	if len(f.mail.sent) != 1 {
		t.Fatalf("sent = %d, want 1 after retries", len(f.mail.sent))
	}
	for _, row := range f.db.deliveries {
		if row.Status != entity.DeliveryStatusSent {
			t.Fatalf("delivery status = %v, want sent", row.Status)
		}
		if row.Attempts != 3 {
			t.Fatalf("delivery attempts = %d, want 3", row.Attempts)
		}
	}
}

func TestUsecase_ConsumePasscodeEmail_ProviderDown(t *testing.T) {
	f := newFixture(t)
	f.mail.failures = -1
	f.mail.err = errors.New("connection refused")

	if err := f.uc.ConsumePasscodeEmail(context.Background(), validInput()); err != nil {
		t.Fatalf("ConsumePasscodeEmail() error = %v, want nil; failure lands on the delivery row", err)
	}

	if len(f.mail.sent) != 0 {
		t.Fatalf("sent = %d, want 0", len(f.mail.sent))
	}
	for _, row := range f.db.deliveries {
		if row.Status != entity.DeliveryStatusFailed {
			t.Fatalf("delivery status = %v, want failed", row.Status)
		}
		if row.Attempts != 3 {
			t.Fatalf("delivery attempts = %d, want 1 + 2 retries", row.Attempts)
		}
		if row.LastError == "" {
			t.Fatal("delivery last error is empty")
		}
		if row.NextRetryAt == nil {
			t.Fatal("delivery next retry is unset")
		}
		if want := testStart.Add(5 * time.Minute); !row.NextRetryAt.Equal(want) {
			t.Fatalf("next retry = %v, want %v", row.NextRetryAt, want)
		}
	}

	stats, err := f.uc.DeliveryStats(context.Background())
	if err != nil {
		t.Fatalf("DeliveryStats() error = %v", err)
	}
	if stats.Failed != 1 {
		t.Fatalf("failed = %d, want 1", stats.Failed)
	}
}

func TestUsecase_ConsumePasscodeEmail_InvalidPayloadDropped(t *testing.T) {
	f := newFixture(t)

	in := validInput()
	in.Email = "not-an-email"

	if err := f.uc.ConsumePasscodeEmail(context.Background(), in); err != nil {
		t.Fatalf("ConsumePasscodeEmail() error = %v, want nil for a poison message", err)
	}

	if len(f.mail.sent) != 0 || len(f.db.deliveries) != 0 {
		t.Fatal("poison message produced side effects")
	}
}

func TestUsecase_ConsumePasscodeEmail_CreateFailurePropagates(t *testing.T) {
	f := newFixture(t)
	f.db.createErr = errors.New("connection refused")

	if err := f.uc.ConsumePasscodeEmail(context.Background(), validInput()); err == nil {
		t.Fatal("ConsumePasscodeEmail() error = nil, want storage failure so the bus redelivers")
	}

	if len(f.mail.sent) != 0 {
		t.Fatal("email sent although the delivery row was never recorded")
	}
}
