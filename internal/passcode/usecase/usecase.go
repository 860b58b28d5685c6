package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/goproof/internal/passcode/entity"
	"github.com/shandysiswandi/goproof/internal/pkg/clock"
	"github.com/shandysiswandi/goproof/internal/pkg/codegen"
	"github.com/shandysiswandi/goproof/internal/pkg/config"
	"github.com/shandysiswandi/goproof/internal/pkg/goerror"
	"github.com/shandysiswandi/goproof/internal/pkg/hash"
	"github.com/shandysiswandi/goproof/internal/pkg/instrument"
	"github.com/shandysiswandi/goproof/internal/pkg/uid"
	"github.com/shandysiswandi/goproof/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type PasscodeEmailEvent struct {
	EventID  string
	OwnerID  string
	Email    string
	Purpose  entity.Purpose
	Subject  string
	Body     string
	IssuedAt time.Time
}

type PasscodeVerifiedEvent struct {
	EventID    string
	OwnerID    string
	Email      string
	Purpose    entity.Purpose
	VerifiedAt time.Time
}

type repoMessaging interface {
	PublishPasscodeEmail(ctx context.Context, msg PasscodeEmailEvent) error
	PublishPasscodeVerified(ctx context.Context, msg PasscodeVerifiedEvent) error
}

type repoDB interface {
	CreatePasscode(ctx context.Context, pc entity.Passcode) error
	GetActivePasscode(ctx context.Context, ownerID, codeHash string, purpose entity.Purpose) (*entity.Passcode, error)
	ConsumePasscode(ctx context.Context, id int64, usedAt time.Time) (bool, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	codegen       codegen.Generator
	hmac          hash.Hash
	uid           uid.NumberID
	oid           uid.StringID
	clock         clock.Clocker
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Codegen       codegen.Generator
	HMAC          hash.Hash
	UID           uid.NumberID
	OID           uid.StringID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		codegen:       dep.Codegen,
		hmac:          dep.HMAC,
		uid:           dep.UID,
		oid:           dep.OID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("passcode.usecase").Start(ctx, name)
}

func (s *Usecase) ttl() time.Duration {
	return s.cfg.GetMinute("modules.passcode.ttl_minutes")
}

// errPurposeInvalid rejects a purpose outside the known set.
func errPurposeInvalid() error {
	return goerror.NewBusiness(
		"purpose must be one of signup_verification, email_change, password_reset",
		goerror.CodeInvalidInput,
	)
}

// errPasscodeInvalidOrExpired is the single rejection for wrong, expired,
// and already-consumed codes. Callers must not learn which case they hit.
func errPasscodeInvalidOrExpired() error {
	return goerror.NewBusiness("passcode is invalid or has expired", goerror.CodeUnauthorized)
}
