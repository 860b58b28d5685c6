package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shandysiswandi/goproof/internal/passcode/entity"
)

// GetActivePasscode returns the newest unused row matching the probe. Expiry
// is not part of the predicate; the usecase reads it off the returned row so
// expired codes keep their storage state.
func (s *DB) GetActivePasscode(ctx context.Context, ownerID, codeHash string, purpose entity.Purpose) (_ *entity.Passcode, err error) {
	ctx, span := s.startSpan(ctx, "GetActivePasscode")
	defer func() { s.endSpan(span, err) }()

	query := `
		SELECT id, owner_id, email, code_hash, purpose, expires_at, used, used_at, created_at
		FROM passcodes
		WHERE owner_id = $1 AND code_hash = $2 AND purpose = $3 AND used = FALSE
		ORDER BY created_at DESC, id DESC
		LIMIT 1`

	var out entity.Passcode
	var expiresAt, usedAt, createdAt pgtype.Timestamptz
	err = s.conn.QueryRow(ctx, query, ownerID, codeHash, purpose).Scan(
		&out.ID,
		&out.OwnerID,
		&out.Email,
		&out.CodeHash,
		&out.Purpose,
		&expiresAt,
		&out.Used,
		&usedAt,
		&createdAt,
	)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}

	out.ExpiresAt = expiresAt.Time
	out.CreatedAt = createdAt.Time
	if usedAt.Valid {
		t := usedAt.Time
		out.UsedAt = &t
	}

	return &out, nil
}
