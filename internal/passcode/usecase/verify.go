package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/goproof/internal/passcode/entity"
	"github.com/shandysiswandi/goproof/internal/pkg/goerror"
)

type VerifyInput struct {
	OwnerID string `validate:"required,max=64"`
	Code    string `validate:"required,len=6,number"`
	Purpose entity.Purpose
}

type VerifyOutput struct {
	OwnerID    string
	Email      string
	Purpose    entity.Purpose
	VerifiedAt time.Time
}

// Verify consumes a matching passcode exactly once. Wrong codes, expired
// codes, and codes lost to a concurrent verify all surface the same
// rejection, so a caller probing codes learns nothing from the shape of the
// failure. Expired rows are left untouched.
func (s *Usecase) Verify(ctx context.Context, in VerifyInput) (*VerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "Verify")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Purpose.IsUnknown() {
		return nil, errPurposeInvalid()
	}

	codeHash, err := s.hmac.Hash(in.Code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash passcode", "error", err)
		return nil, goerror.NewServer(err)
	}

	pc, err := s.repoDB.GetActivePasscode(ctx, in.OwnerID, string(codeHash), in.Purpose)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "no active passcode for probe", "owner_id", in.OwnerID, "purpose", in.Purpose.String())
		return nil, errPasscodeInvalidOrExpired()
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get active passcode", "owner_id", in.OwnerID, "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	if pc.Expired(now) {
		slog.WarnContext(ctx, "passcode has expired", "passcode_id", pc.ID)
		return nil, errPasscodeInvalidOrExpired()
	}

	ok, err := s.repoDB.ConsumePasscode(ctx, pc.ID, now)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo consume passcode", "passcode_id", pc.ID, "error", err)
		return nil, goerror.NewServer(err)
	}
	if !ok {
		slog.WarnContext(ctx, "passcode consumed by concurrent verify", "passcode_id", pc.ID)
		return nil, errPasscodeInvalidOrExpired()
	}

	if err := s.repoMessaging.PublishPasscodeVerified(ctx, PasscodeVerifiedEvent{
		EventID:    s.oid.Generate(),
		OwnerID:    pc.OwnerID,
		Email:      pc.Email,
		Purpose:    pc.Purpose,
		VerifiedAt: now,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish passcode verified", "passcode_id", pc.ID, "error", err)
	}

	return &VerifyOutput{
		OwnerID:    pc.OwnerID,
		Email:      pc.Email,
		Purpose:    pc.Purpose,
		VerifiedAt: now,
	}, nil
}
