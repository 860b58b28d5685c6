package inbound

import (
	"context"

	"github.com/shandysiswandi/goproof/internal/mailer/usecase"
)

type ucConsumer interface {
	ConsumePasscodeEmail(ctx context.Context, in usecase.ConsumePasscodeEmailInput) error
}

type uc interface {
	ucConsumer

	DeliveryList(ctx context.Context, in usecase.DeliveryListInput) (*usecase.DeliveryListOutput, error)
	DeliveryDetail(ctx context.Context, in usecase.DeliveryDetailInput) (*usecase.DeliveryDetailOutput, error)
	DeliveryStats(ctx context.Context) (*usecase.DeliveryStatsOutput, error)
}
