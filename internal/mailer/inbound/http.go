package inbound

import (
	"github.com/shandysiswandi/goproof/internal/pkg/router"
)

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/mailer/deliveries", end.DeliveryList)
	r.GET("/api/v1/mailer/deliveries/:id", end.DeliveryDetail)
	r.GET("/api/v1/mailer/stats", end.DeliveryStats)
}
