package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/goproof/internal/passcode/entity"
	"github.com/shandysiswandi/goproof/internal/pkg/config"
	"github.com/shandysiswandi/goproof/internal/pkg/goerror"
	"github.com/shandysiswandi/goproof/internal/pkg/hash"
	"github.com/shandysiswandi/goproof/internal/pkg/instrument"
	"github.com/shandysiswandi/goproof/internal/pkg/validator"
)

var testStart = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fakeDB is an in-memory store with the same conditional-consume semantics
// the SQL adapter gets from its used = FALSE guard.
type fakeDB struct {
	mu      sync.Mutex
	rows    map[int64]*entity.Passcode
	created []entity.Passcode

	createErr  error
	getErr     error
	consumeErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{rows: make(map[int64]*entity.Passcode)}
}

func (f *fakeDB) CreatePasscode(_ context.Context, pc entity.Passcode) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}

	cp := pc
	f.rows[pc.ID] = &cp
	f.created = append(f.created, pc)
	return nil
}

func (f *fakeDB) GetActivePasscode(_ context.Context, ownerID, codeHash string, purpose entity.Purpose) (*entity.Passcode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.getErr != nil {
		return nil, f.getErr
	}

	var newest *entity.Passcode
	for _, row := range f.rows {
		if row.OwnerID != ownerID || row.CodeHash != codeHash || row.Purpose != purpose || row.Used {
			continue
		}
		if newest == nil || row.ID > newest.ID {
			newest = row
		}
	}
	if newest == nil {
		return nil, goerror.ErrNotFound
	}

	cp := *newest
	return &cp, nil
}

func (f *fakeDB) ConsumePasscode(_ context.Context, id int64, usedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.consumeErr != nil {
		return false, f.consumeErr
	}

	row, ok := f.rows[id]
	if !ok || row.Used {
		return false, nil
	}

	row.Used = true
	t := usedAt
	row.UsedAt = &t
	return true, nil
}

type fakeMessaging struct {
	mu       sync.Mutex
	emails   []PasscodeEmailEvent
	verified []PasscodeVerifiedEvent

	emailErr    error
	verifiedErr error
}

func (f *fakeMessaging) PublishPasscodeEmail(_ context.Context, msg PasscodeEmailEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.emailErr != nil {
		return f.emailErr
	}
	f.emails = append(f.emails, msg)
	return nil
}

func (f *fakeMessaging) PublishPasscodeVerified(_ context.Context, msg PasscodeVerifiedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.verifiedErr != nil {
		return f.verifiedErr
	}
	f.verified = append(f.verified, msg)
	return nil
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

// fakeCodegen serves queued codes in order and falls back to a constant.
type fakeCodegen struct {
	mu    sync.Mutex
	codes []string
	err   error
}

func (f *fakeCodegen) Generate() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return "", f.err
	}
	if len(f.codes) == 0 {
		return "123456", nil
	}
	code := f.codes[0]
	f.codes = f.codes[1:]
	return code, nil
}

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

type fakeStringID struct {
	mu   sync.Mutex
	next int
}

func (f *fakeStringID) Generate() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	return "event-" + string(rune('a'+f.next-1))
}

type fixture struct {
	uc    *Usecase
	db    *fakeDB
	msg   *fakeMessaging
	clock *fakeClock
	gen   *fakeCodegen
	hmac  *hash.HMACSHA256
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}

	cfg, err := config.NewViperFromBytes("yaml", []byte("modules:\n  passcode:\n    ttl_minutes: 10\n"))
	if err != nil {
		t.Fatalf("NewViperFromBytes() error = %v", err)
	}

	f := &fixture{
		db:    newFakeDB(),
		msg:   &fakeMessaging{},
		clock: &fakeClock{now: testStart},
		gen:   &fakeCodegen{},
		hmac:  hash.NewHMACSHA256("passcode-test-secret"),
	}

	f.uc = New(Dependency{
		RepoDB:        f.db,
		RepoMessaging: f.msg,
		Validator:     v10,
		Config:        cfg,
		Codegen:       f.gen,
		HMAC:          f.hmac,
		UID:           &fakeNumberID{},
		OID:           &fakeStringID{},
		Clock:         f.clock,
		Instrument:    instrument.NewNoop(),
	})

	return f
}

func (f *fixture) hashOf(t *testing.T, code string) string {
	t.Helper()

	h, err := f.hmac.Hash(code)
	if err != nil {
		t.Fatalf("Hash(%q) error = %v", code, err)
	}
	return string(h)
}

func wantGoError(t *testing.T, err error, code goerror.Code) *goerror.Error {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error = %v, want *goerror.Error", err)
	}
	if gerr.Code() != code {
		t.Fatalf("error code = %v, want %v", gerr.Code(), code)
	}
	return gerr
}
