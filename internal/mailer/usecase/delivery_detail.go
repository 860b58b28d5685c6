package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/goproof/internal/mailer/entity"
	"github.com/shandysiswandi/goproof/internal/pkg/goerror"
)

type DeliveryDetailInput struct {
	ID int64 `validate:"required,gt=0"`
}

type DeliveryDetailOutput struct {
	Delivery entity.Delivery
}

func (s *Usecase) DeliveryDetail(ctx context.Context, in DeliveryDetailInput) (*DeliveryDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "DeliveryDetail")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	dl, err := s.repoDB.GetDeliveryByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "delivery not found", "delivery_id", in.ID)
		return nil, goerror.NewBusiness("delivery not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get delivery by id", "delivery_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &DeliveryDetailOutput{Delivery: *dl}, nil
}
