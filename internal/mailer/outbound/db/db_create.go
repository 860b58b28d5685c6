package db

import (
	"context"

	"github.com/shandysiswandi/goproof/internal/mailer/entity"
)

// CreateDelivery inserts the queued row. A second event with the same
// event_id hits the unique index and comes back as goerror.ErrConflict.
func (s *DB) CreateDelivery(ctx context.Context, in entity.Delivery) (err error) {
	ctx, span := s.startSpan(ctx, "CreateDelivery")
	defer func() { s.endSpan(span, err) }()

	query := `
		INSERT INTO mailer_deliveries (id, event_id, owner_id, email, purpose, subject, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = s.conn.Exec(ctx, query,
		in.ID,
		in.EventID,
		in.OwnerID,
		in.Email,
		in.Purpose,
		in.Subject,
		in.Status,
	)
	err = s.mapError(err)
	return err
}
