package inbound

import (
	"context"
	"log/slog"
	"slices"

	"github.com/shandysiswandi/goproof/internal/pkg/config"
	"github.com/shandysiswandi/goproof/internal/pkg/goroutine"
	"github.com/shandysiswandi/goproof/internal/pkg/instrument"
	"github.com/shandysiswandi/goproof/internal/pkg/messaging"
	"github.com/shandysiswandi/goproof/internal/pkg/uid"
	"github.com/shandysiswandi/goproof/internal/shared/event"
)

func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Messaging,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	mqHandler := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	enableConsumerNames := cfg.GetArray("modules.mailer.consumer_names")

	// name doubles as the channel, queue group, consumer group, and
	// subscription depending on the configured driver.
	var consumers = []struct {
		name    string
		topic   string
		handler messaging.Handler
	}{
		{
			name:    event.PasscodeEmailConsumerMailer,
			topic:   event.PasscodeEmailDestination,
			handler: mqHandler.PasscodeEmailDelivery,
		},
	}

	for _, consumer := range consumers {
		if len(enableConsumerNames) > 0 && slices.Contains(enableConsumerNames, consumer.name) {
			routine.Go(ctx, func(pCtx context.Context) error {
				slog.InfoContext(ctx, "Running job for handling consumer", "consumer", consumer.name)
				return messenger.Consume(pCtx,
					consumer.topic,
					consumer.handler,
					messaging.WithChannel(consumer.name),
					messaging.WithQueueGroup(consumer.name),
					messaging.WithGroup(consumer.name),
					messaging.WithSubscription(consumer.name),
					messaging.WithAutoAck(true),
					messaging.WithConcurrency(10),
					messaging.WithMaxInFlight(10),
				)
			})
		}
	}
}
