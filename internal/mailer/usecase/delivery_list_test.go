package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/goproof/internal/mailer/entity"
	"github.com/shandysiswandi/goproof/internal/pkg/goerror"
)

func TestUsecase_DeliveryList(t *testing.T) {
	ctx := context.Background()

	t.Run("returns one page", func(t *testing.T) {
		f := newFixture(t)
		f.db.listResult = []entity.Delivery{{ID: 1, EventID: "evt-1"}, {ID: 2, EventID: "evt-2"}}
		f.db.listTotal = 12

		out, err := f.uc.DeliveryList(ctx, DeliveryListInput{Size: 2, Page: 3})
		if err != nil {
			t.Fatalf("DeliveryList() error = %v", err)
		}
		if out.Page != 3 || out.Size != 2 || out.Total != 12 {
			t.Fatalf("page meta = %+v, want page 3 size 2 total 12", out)
		}
		if len(out.Deliveries) != 2 {
			t.Fatalf("deliveries = %d, want 2", len(out.Deliveries))
		}
	})

	t.Run("defaults page and size", func(t *testing.T) {
		f := newFixture(t)

		out, err := f.uc.DeliveryList(ctx, DeliveryListInput{Size: 500, Page: 0})
		if err != nil {
			t.Fatalf("DeliveryList() error = %v", err)
		}
		if out.Page != 1 {
			t.Fatalf("page = %d, want 1", out.Page)
		}
		if out.Size != 10 {
			t.Fatalf("size = %d, want clamped default 10", out.Size)
		}
	})

	t.Run("propagates storage failure", func(t *testing.T) {
		f := newFixture(t)
		f.db.listErr = errors.New("connection refused")

		_, err := f.uc.DeliveryList(ctx, DeliveryListInput{})
		var gerr *goerror.Error
		if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeInternal {
			t.Fatalf("error = %v, want internal server error", err)
		}
	})
}

func TestUsecase_DeliveryDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the row", func(t *testing.T) {
		f := newFixture(t)
		if err := f.db.CreateDelivery(ctx, entity.Delivery{ID: 7, EventID: "evt-7", Email: "a@b.io"}); err != nil {
			t.Fatalf("seed error = %v", err)
		}

		out, err := f.uc.DeliveryDetail(ctx, DeliveryDetailInput{ID: 7})
		if err != nil {
			t.Fatalf("DeliveryDetail() error = %v", err)
		}
		if out.Delivery.EventID != "evt-7" {
			t.Fatalf("delivery = %+v, want event evt-7", out.Delivery)
		}
	})

	t.Run("missing row is a client error", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.DeliveryDetail(ctx, DeliveryDetailInput{ID: 404})
		var gerr *goerror.Error
		if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeNotFound {
			t.Fatalf("error = %v, want not found", err)
		}
	})

	t.Run("rejects non-positive id", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.DeliveryDetail(ctx, DeliveryDetailInput{ID: 0})
		var gerr *goerror.Error
		if !errors.As(err, &gerr) || gerr.Code() != goerror.CodeInvalidInput {
			t.Fatalf("error = %v, want invalid input", err)
		}
	})
}

func TestUsecase_DeliveryStats(t *testing.T) {
	f := newFixture(t)
	f.db.countResult = []entity.DeliveryStatusCount{
		{Status: entity.DeliveryStatusSent, Count: 40},
		{Status: entity.DeliveryStatusFailed, Count: 2},
	}

	out, err := f.uc.DeliveryStats(context.Background())
	if err != nil {
		t.Fatalf("DeliveryStats() error = %v", err)
	}
	if out.Statuses["sent"] != 40 || out.Statuses["failed"] != 2 {
		t.Fatalf("statuses = %v, want sent 40 failed 2", out.Statuses)
	}
}
