package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shandysiswandi/goproof/internal/mailer/entity"
)

const deliveryColumns = "id, event_id, owner_id, email, purpose, subject, status, attempts, last_error, next_retry_at, created_at, updated_at"

func scanDelivery(row pgx.Row) (*entity.Delivery, error) {
	var dl entity.Delivery
	var nextRetryAt, createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(
		&dl.ID,
		&dl.EventID,
		&dl.OwnerID,
		&dl.Email,
		&dl.Purpose,
		&dl.Subject,
		&dl.Status,
		&dl.Attempts,
		&dl.LastError,
		&nextRetryAt,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}

	dl.CreatedAt = createdAt.Time
	dl.UpdatedAt = updatedAt.Time
	if nextRetryAt.Valid {
		t := nextRetryAt.Time
		dl.NextRetryAt = &t
	}

	return &dl, nil
}

func (s *DB) GetDeliveryList(ctx context.Context, filter entity.DeliveryListFilter) (_ []entity.Delivery, _ int64, err error) {
	ctx, span := s.startSpan(ctx, "GetDeliveryList")
	defer func() { s.endSpan(span, err) }()

	var conds []string
	var args []any
	if filter.Status != entity.DeliveryStatusUnknown {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Purpose != entity.PurposeUnknown {
		args = append(args, filter.Purpose)
		conds = append(conds, fmt.Sprintf("purpose = $%d", len(args)))
	}
	if !filter.DateFrom.IsZero() {
		args = append(args, pgtype.Timestamptz{Valid: true, Time: filter.DateFrom})
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if !filter.DateTo.IsZero() {
		args = append(args, pgtype.Timestamptz{Valid: true, Time: filter.DateTo})
		conds = append(conds, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	var where string
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err = s.conn.QueryRow(ctx, "SELECT COUNT(*) FROM mailer_deliveries"+where, args...).Scan(&total); err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}

	args = append(args, filter.Size, filter.Offset)
	query := fmt.Sprintf(`
		SELECT %s
		FROM mailer_deliveries%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d`, deliveryColumns, where, len(args)-1, len(args))

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}
	defer rows.Close()

	var out []entity.Delivery
	for rows.Next() {
		dl, scanErr := scanDelivery(rows)
		if scanErr != nil {
			err = s.mapError(scanErr)
			return nil, 0, err
		}
		out = append(out, *dl)
	}
	if err = rows.Err(); err != nil {
		err = s.mapError(err)
		return nil, 0, err
	}

	return out, total, nil
}

func (s *DB) GetDeliveryByID(ctx context.Context, id int64) (_ *entity.Delivery, err error) {
	ctx, span := s.startSpan(ctx, "GetDeliveryByID")
	defer func() { s.endSpan(span, err) }()

	query := fmt.Sprintf("SELECT %s FROM mailer_deliveries WHERE id = $1", deliveryColumns)

	dl, err := scanDelivery(s.conn.QueryRow(ctx, query, id))
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return dl, nil
}

func (s *DB) CountDeliveriesByStatus(ctx context.Context) (_ []entity.DeliveryStatusCount, err error) {
	ctx, span := s.startSpan(ctx, "CountDeliveriesByStatus")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT status, COUNT(*)
		FROM mailer_deliveries
		GROUP BY status
		ORDER BY status`

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	defer rows.Close()

	var out []entity.DeliveryStatusCount
	for rows.Next() {
		var c entity.DeliveryStatusCount
		if err = rows.Scan(&c.Status, &c.Count); err != nil {
			err = s.mapError(err)
			return nil, err
		}
		out = append(out, c)
	}
	if err = rows.Err(); err != nil {
		err = s.mapError(err)
		return nil, err
	}

	return out, nil
}
