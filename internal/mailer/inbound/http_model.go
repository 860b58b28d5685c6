package inbound

import (
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/goproof/internal/mailer/entity"
)

type DeliveryResponse struct {
	ID          int64      `json:"id"`
	EventID     string     `json:"event_id"`
	OwnerID     string     `json:"owner_id"`
	Email       string     `json:"email"`
	Purpose     string     `json:"purpose"`
	Subject     string     `json:"subject"`
	Status      string     `json:"status"`
	Attempts    int32      `json:"attempts"`
	LastError   string     `json:"last_error,omitempty"`
	NextRetryAt *time.Time `json:"next_retry_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type DeliveriesResponse struct {
	Page       int32              `json:"page"`
	Size       int32              `json:"size"`
	Total      int64              `json:"total"`
	Deliveries []DeliveryResponse `json:"deliveries"`
}

type StatsResponse struct {
	Statuses   map[string]int64 `json:"statuses"`
	Consumed   int64            `json:"consumed"`
	Duplicates int64            `json:"duplicates"`
	Sent       int64            `json:"sent"`
	Failed     int64            `json:"failed"`
}

func toDeliveryResponse(dl entity.Delivery) DeliveryResponse {
	return DeliveryResponse{
		ID:          dl.ID,
		EventID:     dl.EventID,
		OwnerID:     dl.OwnerID,
		Email:       dl.Email,
		Purpose:     dl.Purpose.String(),
		Subject:     dl.Subject,
		Status:      dl.Status.String(),
		Attempts:    dl.Attempts,
		LastError:   dl.LastError,
		NextRetryAt: dl.NextRetryAt,
		CreatedAt:   dl.CreatedAt,
		UpdatedAt:   dl.UpdatedAt,
	}
}

func toDeliveryResponses(dls []entity.Delivery) []DeliveryResponse {
	return lo.Map(dls, func(dl entity.Delivery, _ int) DeliveryResponse {
		return toDeliveryResponse(dl)
	})
}
