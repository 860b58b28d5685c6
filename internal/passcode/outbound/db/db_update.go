package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// ConsumePasscode flips used on the row if nothing consumed it first. The
// used = FALSE guard makes concurrent verifies race on the same row; exactly
// one caller gets true.
func (s *DB) ConsumePasscode(ctx context.Context, id int64, usedAt time.Time) (_ bool, err error) {
	ctx, span := s.startSpan(ctx, "ConsumePasscode")
	defer func() { s.endSpan(span, err) }()

	query := `
		UPDATE passcodes
		SET used = TRUE, used_at = $2
		WHERE id = $1 AND used = FALSE`

	tag, err := s.conn.Exec(ctx, query, id, pgtype.Timestamptz{Valid: true, Time: usedAt})
	if err != nil {
		err = s.mapError(err)
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}
