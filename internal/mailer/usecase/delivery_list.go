package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/goproof/internal/mailer/entity"
	"github.com/shandysiswandi/goproof/internal/pkg/goerror"
)

type DeliveryListInput struct {
	Status   int16
	Purpose  int16
	DateFrom time.Time
	DateTo   time.Time
	Size     int32
	Page     int32
}

type DeliveryListOutput struct {
	Page       int32
	Size       int32
	Total      int64
	Deliveries []entity.Delivery
}

func (s *Usecase) DeliveryList(ctx context.Context, in DeliveryListInput) (*DeliveryListOutput, error) {
	ctx, span := s.startSpan(ctx, "DeliveryList")
	defer span.End()

	if in.Size <= 0 || in.Size > 100 {
		in.Size = 10 // default limit
	}

	filter := entity.DeliveryListFilter{
		Status:   entity.DeliveryStatus(in.Status),
		Purpose:  entity.Purpose(in.Purpose),
		DateFrom: in.DateFrom,
		DateTo:   in.DateTo,
		Size:     in.Size,
		Offset:   (max(in.Page, 1) - 1) * in.Size,
	}

	deliveries, count, err := s.repoDB.GetDeliveryList(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list deliveries", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &DeliveryListOutput{
		Page:       max(in.Page, 1),
		Size:       in.Size,
		Total:      count,
		Deliveries: deliveries,
	}, nil
}
