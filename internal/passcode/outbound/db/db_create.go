package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shandysiswandi/goproof/internal/passcode/entity"
)

func (s *DB) CreatePasscode(ctx context.Context, in entity.Passcode) (err error) {
	ctx, span := s.startSpan(ctx, "CreatePasscode")
	defer func() { s.endSpan(span, err) }()

	query := `
		INSERT INTO passcodes (id, owner_id, email, code_hash, purpose, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = s.conn.Exec(ctx, query,
		in.ID,
		in.OwnerID,
		in.Email,
		in.CodeHash,
		in.Purpose,
		pgtype.Timestamptz{Valid: true, Time: in.ExpiresAt},
	)
	err = s.mapError(err)
	return err
}
