package usecase

import (
	"context"
	"log/slog"

	"github.com/shandysiswandi/goproof/internal/pkg/goerror"
)

type DeliveryStatsOutput struct {
	// Statuses counts delivery rows by status name.
	Statuses map[string]int64
	// The remaining fields are process-local since the last restart.
	Consumed   int64
	Duplicates int64
	Sent       int64
	Failed     int64
}

func (s *Usecase) DeliveryStats(ctx context.Context) (*DeliveryStatsOutput, error) {
	ctx, span := s.startSpan(ctx, "DeliveryStats")
	defer span.End()

	counts, err := s.repoDB.CountDeliveriesByStatus(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo count deliveries by status", "error", err)
		return nil, goerror.NewServer(err)
	}

	statuses := make(map[string]int64, len(counts))
	for _, c := range counts {
		statuses[c.Status.String()] = c.Count
	}

	return &DeliveryStatsOutput{
		Statuses:   statuses,
		Consumed:   s.counters.consumed.Load(),
		Duplicates: s.counters.duplicates.Load(),
		Sent:       s.counters.sent.Load(),
		Failed:     s.counters.failed.Load(),
	}, nil
}
