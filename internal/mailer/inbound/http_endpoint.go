package inbound

import (
	"time"

	"github.com/shandysiswandi/goproof/internal/mailer/usecase"
	"github.com/shandysiswandi/goproof/internal/pkg/goerror"
	"github.com/shandysiswandi/goproof/internal/pkg/router"
)

// HTTPEndpoint exposes read-only views over the delivery log.
type HTTPEndpoint struct {
	uc uc
}

// DeliveryList returns a page of the delivery log with optional filters.
func (h *HTTPEndpoint) DeliveryList(r *router.Request) (any, error) {
	status, err := r.GetQueryInt16("status")
	if err != nil {
		return nil, err
	}

	purpose, err := r.GetQueryInt16("purpose")
	if err != nil {
		return nil, err
	}

	size, err := r.GetQueryInt32("size")
	if err != nil {
		return nil, err
	}

	page, err := r.GetQueryInt32("page")
	if err != nil {
		return nil, err
	}

	dateFrom, err := r.GetQueryDate("date_from", time.RFC3339)
	if err != nil {
		return nil, err
	}

	dateTo, err := r.GetQueryDate("date_to", time.RFC3339)
	if err != nil {
		return nil, err
	}

	if !dateFrom.IsZero() && !dateTo.IsZero() && dateFrom.After(dateTo) {
		return nil, goerror.NewInvalidFormat("date_from must be before date_to")
	}

	resp, err := h.uc.DeliveryList(r.Context(), usecase.DeliveryListInput{
		Status:   status,
		Purpose:  purpose,
		DateFrom: dateFrom,
		DateTo:   dateTo,
		Size:     size,
		Page:     page,
	})
	if err != nil {
		return nil, err
	}

	return DeliveriesResponse{
		Page:       resp.Page,
		Size:       resp.Size,
		Total:      resp.Total,
		Deliveries: toDeliveryResponses(resp.Deliveries),
	}, nil
}

// DeliveryDetail returns one delivery row by id.
func (h *HTTPEndpoint) DeliveryDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.DeliveryDetail(r.Context(), usecase.DeliveryDetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return toDeliveryResponse(resp.Delivery), nil
}

// DeliveryStats returns per-status row counts plus process counters.
func (h *HTTPEndpoint) DeliveryStats(r *router.Request) (any, error) {
	resp, err := h.uc.DeliveryStats(r.Context())
	if err != nil {
		return nil, err
	}

	return StatsResponse{
		Statuses:   resp.Statuses,
		Consumed:   resp.Consumed,
		Duplicates: resp.Duplicates,
		Sent:       resp.Sent,
		Failed:     resp.Failed,
	}, nil
}
