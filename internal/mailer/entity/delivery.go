package entity

import "time"

// Delivery is one row of the delivery log. The email body is never stored;
// it lives only on the event that carried it.
type Delivery struct {
	ID          int64
	EventID     string
	OwnerID     string
	Email       string
	Purpose     Purpose
	Subject     string
	Status      DeliveryStatus
	Attempts    int32
	LastError   string
	NextRetryAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DeliveryListFilter narrows the delivery list. Zero values leave the
// dimension unfiltered.
type DeliveryListFilter struct {
	Status   DeliveryStatus
	Purpose  Purpose
	DateFrom time.Time
	DateTo   time.Time
	Size     int32
	Offset   int32
}

// UpdateDelivery carries the outcome of a send attempt.
type UpdateDelivery struct {
	ID          int64
	Status      DeliveryStatus
	Attempts    int32
	LastError   string
	NextRetryAt *time.Time
}

// DeliveryStatusCount is one row of the per-status aggregate.
type DeliveryStatusCount struct {
	Status DeliveryStatus
	Count  int64
}
