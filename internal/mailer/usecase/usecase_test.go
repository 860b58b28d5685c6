package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/goproof/internal/mailer/entity"
	"github.com/shandysiswandi/goproof/internal/pkg/config"
	"github.com/shandysiswandi/goproof/internal/pkg/goerror"
	"github.com/shandysiswandi/goproof/internal/pkg/idempotency"
	"github.com/shandysiswandi/goproof/internal/pkg/instrument"
	"github.com/shandysiswandi/goproof/internal/pkg/mail"
	"github.com/shandysiswandi/goproof/internal/pkg/validator"
)

var testStart = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeRepoDB struct {
	mu         sync.Mutex
	deliveries map[int64]*entity.Delivery
	byEventID  map[string]int64
	updates    []entity.UpdateDelivery

	createErr error
	listErr   error
	getErr    error
	countErr  error

	listResult  []entity.Delivery
	listTotal   int64
	countResult []entity.DeliveryStatusCount
}

func newFakeRepoDB() *fakeRepoDB {
	return &fakeRepoDB{
		deliveries: make(map[int64]*entity.Delivery),
		byEventID:  make(map[string]int64),
	}
}

func (f *fakeRepoDB) CreateDelivery(_ context.Context, in entity.Delivery) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	if _, dup := f.byEventID[in.EventID]; dup {
		return goerror.ErrConflict
	}

	cp := in
	f.deliveries[in.ID] = &cp
	f.byEventID[in.EventID] = in.ID
	return nil
}

func (f *fakeRepoDB) UpdateDeliveryStatus(_ context.Context, in entity.UpdateDelivery) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updates = append(f.updates, in)
	if row, ok := f.deliveries[in.ID]; ok {
		row.Status = in.Status
		row.Attempts = in.Attempts
		row.LastError = in.LastError
		row.NextRetryAt = in.NextRetryAt
	}
	return nil
}

func (f *fakeRepoDB) GetDeliveryList(_ context.Context, _ entity.DeliveryListFilter) ([]entity.Delivery, int64, error) {
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.listResult, f.listTotal, nil
}

func (f *fakeRepoDB) GetDeliveryByID(_ context.Context, id int64) (*entity.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}
	row, ok := f.deliveries[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (f *fakeRepoDB) CountDeliveriesByStatus(_ context.Context) ([]entity.DeliveryStatusCount, error) {
	if f.countErr != nil {
		return nil, f.countErr
	}
	return f.countResult, nil
}

// fakeMail fails the first `failures` sends with err; failures = -1 fails
// every send.
type fakeMail struct {
	mu       sync.Mutex
	sent     []mail.Message
	failures int
	err      error
}

func (f *fakeMail) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failures < 0 {
		return f.err
	}
	if f.failures > 0 {
		f.failures--
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

// fakeIdempotency mirrors the redis tracker with an in-process map.
type fakeIdempotency struct {
	mu     sync.Mutex
	states map[string]idempotency.State
}

func newFakeIdempotency() *fakeIdempotency {
	return &fakeIdempotency{states: make(map[string]idempotency.State)}
}

func (f *fakeIdempotency) Acquire(_ context.Context, key string, _ time.Duration) (idempotency.State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if state, ok := f.states[key]; ok {
		return state, nil
	}
	f.states[key] = idempotency.StateInProgress
	return idempotency.StateNone, nil
}

func (f *fakeIdempotency) MarkCompleted(_ context.Context, key string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states[key] = idempotency.StateCompleted
	return nil
}

func (f *fakeIdempotency) MarkFailed(_ context.Context, key string, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states[key] = idempotency.StateFailed
	return nil
}

func (f *fakeIdempotency) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	state, err := f.Acquire(ctx, key, 0)
	if err != nil {
		return err
	}

	switch state {
	case idempotency.StateInProgress:
		return idempotency.ErrAlreadyInProgress
	case idempotency.StateCompleted:
		return idempotency.ErrAlreadyCompleted
	case idempotency.StateFailed:
		return idempotency.ErrAlreadyFailed
	}

	if err := fn(ctx); err != nil {
		if markErr := f.MarkFailed(ctx, key, 0); markErr != nil {
			return markErr
		}
		return err
	}
	return f.MarkCompleted(ctx, key, 0)
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeNumberID struct {
	mu   sync.Mutex
	next int64
}

func (f *fakeNumberID) Generate() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	return f.next
}

type fixture struct {
	uc    *Usecase
	db    *fakeRepoDB
	mail  *fakeMail
	idemp *fakeIdempotency
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	cfg, err := config.NewViperFromBytes("yaml", []byte(
		"modules:\n  mailer:\n    send_max_retries: 2\n    retry_backoff_minutes: 5\n"))
	if err != nil {
		t.Fatalf("NewViperFromBytes() error = %v", err)
	}

	f := &fixture{
		db:    newFakeRepoDB(),
		mail:  &fakeMail{},
		idemp: newFakeIdempotency(),
	}

	f.uc = New(Dependency{
		RepoDB:      f.db,
		RepoMail:    f.mail,
		Idempotency: f.idemp,
		Validator:   v10,
		Config:      cfg,
		UID:         &fakeNumberID{},
		Clock:       &fakeClock{now: testStart},
		Instrument:  instrument.NewNoop(),
	})

	return f
}
