package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/goproof/internal/passcode/entity"
	"github.com/shandysiswandi/goproof/internal/pkg/goerror"
)

type IssueInput struct {
	OwnerID string `validate:"required,max=64"`
	Email   string `validate:"required,email"`
	Purpose entity.Purpose
}

type IssueOutput struct {
	Code      string
	ExpiresAt time.Time
}

// Issue mints a passcode for the owner, stores its hash, and hands the email
// off to the bus. The plaintext code exists only in the returned output and
// in the published message; it is never written to storage.
func (s *Usecase) Issue(ctx context.Context, in IssueInput) (*IssueOutput, error) {
	ctx, span := s.startSpan(ctx, "Issue")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if in.Purpose.IsUnknown() {
		return nil, errPurposeInvalid()
	}

	code, err := s.codegen.Generate()
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate passcode", "error", err)
		return nil, goerror.NewServer(err)
	}

	codeHash, err := s.hmac.Hash(code)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash passcode", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	pc := entity.Passcode{
		ID:        s.uid.Generate(),
		OwnerID:   in.OwnerID,
		Email:     in.Email,
		CodeHash:  string(codeHash),
		Purpose:   in.Purpose,
		ExpiresAt: now.Add(s.ttl()),
	}

	if err := s.repoDB.CreatePasscode(ctx, pc); err != nil {
		slog.ErrorContext(ctx, "failed to repo create passcode", "owner_id", pc.OwnerID, "error", err)
		return nil, goerror.NewServer(err)
	}

	subject, body, err := renderEmail(pc.Purpose, code, s.ttl())
	if err != nil {
		slog.ErrorContext(ctx, "failed to render passcode email", "passcode_id", pc.ID, "error", err)
		return &IssueOutput{Code: code, ExpiresAt: pc.ExpiresAt}, nil
	}

	if err := s.repoMessaging.PublishPasscodeEmail(ctx, PasscodeEmailEvent{
		EventID:  s.oid.Generate(),
		OwnerID:  pc.OwnerID,
		Email:    pc.Email,
		Purpose:  pc.Purpose,
		Subject:  subject,
		Body:     body,
		IssuedAt: now,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish passcode email", "passcode_id", pc.ID, "error", err)
	}

	return &IssueOutput{Code: code, ExpiresAt: pc.ExpiresAt}, nil
}
