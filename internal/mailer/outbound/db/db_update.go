package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shandysiswandi/goproof/internal/mailer/entity"
)

func (s *DB) UpdateDeliveryStatus(ctx context.Context, in entity.UpdateDelivery) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateDeliveryStatus")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE mailer_deliveries
		SET status = $2, attempts = $3, last_error = $4, next_retry_at = $5, updated_at = NOW()
		WHERE id = $1`

	var nextRetryAt pgtype.Timestamptz
	if in.NextRetryAt != nil {
		nextRetryAt = pgtype.Timestamptz{Valid: true, Time: *in.NextRetryAt}
	}

	_, err = s.conn.Exec(ctx, query, in.ID, in.Status, in.Attempts, in.LastError, nextRetryAt)
	err = s.mapError(err)
	return err
}
