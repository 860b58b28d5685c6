package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/goproof/internal/mailer/entity"
	"github.com/shandysiswandi/goproof/internal/pkg/goerror"
	"github.com/shandysiswandi/goproof/internal/pkg/idempotency"
	"github.com/shandysiswandi/goproof/internal/pkg/mail"
)

type ConsumePasscodeEmailInput struct {
	EventID  string `validate:"required"`
	OwnerID  string `validate:"required"`
	Email    string `validate:"required,email"`
	Purpose  int16
	Subject  string `validate:"required"`
	Body     string `validate:"required"`
	IssuedAt time.Time
}

// ConsumePasscodeEmail records and sends one passcode email. Two layers
// dedupe bus redeliveries: the redis key catches replays across replicas,
// and the event_id unique index catches anything that outlives it. A send
// failure is recorded on the delivery row rather than bounced back to the
// bus; redelivering the event would race a second email past the dedupe.
func (s *Usecase) ConsumePasscodeEmail(ctx context.Context, in ConsumePasscodeEmailInput) error {
	ctx, span := s.startSpan(ctx, "ConsumePasscodeEmail")
	defer span.End()

	s.counters.consumed.Inc()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "Validation failed", "error", err)
		return nil
	}

	execErr := s.idemp.Exec(ctx, "passcode_email:"+in.EventID, func(ctx context.Context) error {
		return s.deliver(ctx, in)
	})
	switch {
	case errors.Is(execErr, idempotency.ErrAlreadyCompleted), errors.Is(execErr, idempotency.ErrAlreadyInProgress):
		s.counters.duplicates.Inc()
		slog.WarnContext(ctx, "duplicate passcode email event", "event_id", in.EventID)
		return nil
	case errors.Is(execErr, idempotency.ErrAlreadyFailed):
		// The previous attempt errored before recording anything durable.
		// Run again; the unique index still blocks a double send.
		return s.deliver(ctx, in)
	}

	return execErr
}

func (s *Usecase) deliver(ctx context.Context, in ConsumePasscodeEmailInput) error {
	dl := entity.Delivery{
		ID:      s.uid.Generate(),
		EventID: in.EventID,
		OwnerID: in.OwnerID,
		Email:   in.Email,
		Purpose: entity.Purpose(in.Purpose),
		Subject: in.Subject,
		Status:  entity.DeliveryStatusQueued,
	}
	if err := s.repoDB.CreateDelivery(ctx, dl); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			s.counters.duplicates.Inc()
			slog.WarnContext(ctx, "duplicate passcode email event", "event_id", in.EventID)
			return nil
		}
		slog.ErrorContext(ctx, "failed to repo create delivery", "event_id", in.EventID, "error", err)
		return err
	}

	attempts, sendErr := s.sendWithRetry(ctx, mail.Message{
		To:       []string{in.Email},
		Subject:  in.Subject,
		TextBody: in.Body,
	})
	if sendErr == nil {
		s.counters.sent.Inc()
		if err := s.repoDB.UpdateDeliveryStatus(ctx, entity.UpdateDelivery{
			ID:       dl.ID,
			Status:   entity.DeliveryStatusSent,
			Attempts: attempts,
		}); err != nil {
			slog.ErrorContext(ctx, "failed to repo update delivery status sent", "delivery_id", dl.ID, "error", err)
		}
		return nil
	}

	s.counters.failed.Inc()
	nextRetry := s.clock.Now().Add(s.cfg.GetMinute("modules.mailer.retry_backoff_minutes"))
	if err := s.repoDB.UpdateDeliveryStatus(ctx, entity.UpdateDelivery{
		ID:          dl.ID,
		Status:      entity.DeliveryStatusFailed,
		Attempts:    attempts,
		LastError:   sendErr.Error(),
		NextRetryAt: &nextRetry,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to repo update delivery status failed", "delivery_id", dl.ID, "error", err)
	}

	slog.ErrorContext(ctx, "failed to send passcode email", "delivery_id", dl.ID, "event_id", in.EventID, "error", sendErr)
	return nil
}

// sendWithRetry retries provider failures with capped fibonacci backoff and
// reports how many attempts it made.
func (s *Usecase) sendWithRetry(ctx context.Context, msg mail.Message) (int32, error) {
	var attempts int32

	b := retry.NewFibonacci(200 * time.Millisecond)
	b = retry.WithCappedDuration(5*time.Second, b)
	b = retry.WithMaxRetries(uint64(s.cfg.GetInt("modules.mailer.send_max_retries")), b)

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempts++
		if err := s.repoMail.Send(ctx, msg); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})

	return attempts, err
}
