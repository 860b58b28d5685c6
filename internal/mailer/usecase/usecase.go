package usecase

import (
	"context"

	"github.com/shandysiswandi/goproof/internal/mailer/entity"
	"github.com/shandysiswandi/goproof/internal/pkg/clock"
	"github.com/shandysiswandi/goproof/internal/pkg/config"
	"github.com/shandysiswandi/goproof/internal/pkg/idempotency"
	"github.com/shandysiswandi/goproof/internal/pkg/instrument"
	"github.com/shandysiswandi/goproof/internal/pkg/mail"
	"github.com/shandysiswandi/goproof/internal/pkg/uid"
	"github.com/shandysiswandi/goproof/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
)

type repoDB interface {
	CreateDelivery(ctx context.Context, in entity.Delivery) error
	UpdateDeliveryStatus(ctx context.Context, in entity.UpdateDelivery) error
	GetDeliveryList(ctx context.Context, filter entity.DeliveryListFilter) ([]entity.Delivery, int64, error)
	GetDeliveryByID(ctx context.Context, id int64) (*entity.Delivery, error)
	CountDeliveriesByStatus(ctx context.Context) ([]entity.DeliveryStatusCount, error)
}

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

// counters are process-local tallies surfaced by DeliveryStats. They reset
// on restart; durable numbers live in the delivery log.
type counters struct {
	consumed   *atomic.Int64
	duplicates *atomic.Int64
	sent       *atomic.Int64
	failed     *atomic.Int64
}

type Usecase struct {
	repoDB    repoDB
	repoMail  repoMail
	idemp     idempotency.Idempotency
	validator validator.Validator
	cfg       config.Config
	uid       uid.NumberID
	clock     clock.Clocker
	ins       instrument.Instrumentation
	counters  counters
}

type Dependency struct {
	RepoDB      repoDB
	RepoMail    repoMail
	Idempotency idempotency.Idempotency
	Validator   validator.Validator
	Config      config.Config
	UID         uid.NumberID
	Clock       clock.Clocker
	Instrument  instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		repoMail:  dep.RepoMail,
		idemp:     dep.Idempotency,
		validator: dep.Validator,
		cfg:       dep.Config,
		uid:       dep.UID,
		clock:     dep.Clock,
		ins:       dep.Instrument,
		counters: counters{
			consumed:   atomic.NewInt64(0),
			duplicates: atomic.NewInt64(0),
			sent:       atomic.NewInt64(0),
			failed:     atomic.NewInt64(0),
		},
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("mailer.usecase").Start(ctx, name)
}
