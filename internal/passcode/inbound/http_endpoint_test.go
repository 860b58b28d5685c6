package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/goproof/internal/passcode/entity"
	"github.com/shandysiswandi/goproof/internal/passcode/usecase"
	"github.com/shandysiswandi/goproof/internal/pkg/clock"
	"github.com/shandysiswandi/goproof/internal/pkg/config"
	"github.com/shandysiswandi/goproof/internal/pkg/goerror"
	"github.com/shandysiswandi/goproof/internal/pkg/instrument"
	"github.com/shandysiswandi/goproof/internal/pkg/jwt"
	"github.com/shandysiswandi/goproof/internal/pkg/router"
	"github.com/shandysiswandi/goproof/internal/pkg/uid"
)

type fakeUC struct {
	issueIn   *usecase.IssueInput
	issueOut  *usecase.IssueOutput
	issueErr  error
	verifyIn  *usecase.VerifyInput
	verifyOut *usecase.VerifyOutput
	verifyErr error
}

func (f *fakeUC) Issue(_ context.Context, in usecase.IssueInput) (*usecase.IssueOutput, error) {
	f.issueIn = &in
	return f.issueOut, f.issueErr
}

func (f *fakeUC) Verify(_ context.Context, in usecase.VerifyInput) (*usecase.VerifyOutput, error) {
	f.verifyIn = &in
	return f.verifyOut, f.verifyErr
}

func newTestRouter(t *testing.T, uc uc) *router.Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  maintenance:\n    endpoints: []\n"))
	if err != nil {
		t.Fatalf("NewViperFromBytes() error = %v", err)
	}

	signer, err := jwt.NewHS512(jwt.Config{
		Secret:    []byte(strings.Repeat("s", 64)),
		Issuer:    "goproof-test",
		Audiences: []string{"goproof-ops"},
		TTL:       time.Minute,
		Clock:     clock.New(),
		UUID:      uid.NewUUID(),
	})
	if err != nil {
		t.Fatalf("NewHS512() error = %v", err)
	}

	r := router.NewRouter(router.Config{
		Config:     cfg,
		UUID:       uid.NewUUID(),
		JWT:        signer,
		Instrument: instrument.NewNoop(),
	})
	RegisterHTTPEndpoint(r, uc)
	return r
}

func do(t *testing.T, r *router.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHTTPEndpoint_Issue(t *testing.T) {
	t.Run("acknowledges without leaking the code", func(t *testing.T) {
		uc := &fakeUC{issueOut: &usecase.IssueOutput{Code: "482913", ExpiresAt: time.Now().Add(10 * time.Minute)}}
		r := newTestRouter(t, uc)

		rec := do(t, r, http.MethodPost, "/api/v1/passcodes/issue",
			`{"owner_id":"u1","email":"a@b.io","purpose":"signup_verification"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		if strings.Contains(rec.Body.String(), "482913") {
			t.Fatalf("response body leaks the passcode: %s", rec.Body.String())
		}

		if uc.issueIn == nil {
			t.Fatal("usecase not invoked")
		}
		if uc.issueIn.OwnerID != "u1" || uc.issueIn.Email != "a@b.io" {
			t.Fatalf("usecase input = %+v, want request fields", uc.issueIn)
		}
		if uc.issueIn.Purpose != entity.PurposeSignupVerification {
			t.Fatalf("usecase purpose = %v, want %v", uc.issueIn.Purpose, entity.PurposeSignupVerification)
		}

		var envelope struct {
			Message string         `json:"message"`
			Data    map[string]any `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("response is not JSON: %v", err)
		}
		if envelope.Message == "" {
			t.Fatal("acknowledgement message is empty")
		}
		if len(envelope.Data) != 0 {
			t.Fatalf("data = %v, want empty acknowledgement", envelope.Data)
		}
	})

	t.Run("maps invalid purpose to client error", func(t *testing.T) {
		uc := &fakeUC{issueErr: goerror.NewBusiness("purpose must be one of signup_verification, email_change, password_reset", goerror.CodeInvalidInput)}
		r := newTestRouter(t, uc)

		rec := do(t, r, http.MethodPost, "/api/v1/passcodes/issue",
			`{"owner_id":"u1","email":"a@b.io","purpose":"nope"}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
		}
	})

	t.Run("maps storage failure to server error", func(t *testing.T) {
		uc := &fakeUC{issueErr: goerror.NewServer(context.DeadlineExceeded)}
		r := newTestRouter(t, uc)

		rec := do(t, r, http.MethodPost, "/api/v1/passcodes/issue",
			`{"owner_id":"u1","email":"a@b.io","purpose":"signup_verification"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
		}
		if strings.Contains(rec.Body.String(), "deadline") {
			t.Fatalf("response leaks the internal cause: %s", rec.Body.String())
		}
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		r := newTestRouter(t, &fakeUC{})

		rec := do(t, r, http.MethodPost, "/api/v1/passcodes/issue", `{"owner_id":`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		r := newTestRouter(t, &fakeUC{})

		rec := do(t, r, http.MethodPost, "/api/v1/passcodes/issue",
			`{"owner_id":"u1","email":"a@b.io","purpose":"signup_verification","code":"123456"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestHTTPEndpoint_Verify(t *testing.T) {
	t.Run("acknowledges success", func(t *testing.T) {
		verifiedAt := time.Date(2025, 6, 1, 12, 5, 0, 0, time.UTC)
		uc := &fakeUC{verifyOut: &usecase.VerifyOutput{
			OwnerID:    "u1",
			Email:      "a@b.io",
			Purpose:    entity.PurposeSignupVerification,
			VerifiedAt: verifiedAt,
		}}
		r := newTestRouter(t, uc)

		rec := do(t, r, http.MethodPost, "/api/v1/passcodes/verify",
			`{"owner_id":"u1","code":"482913","purpose":"signup_verification"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		if uc.verifyIn == nil || uc.verifyIn.Code != "482913" {
			t.Fatalf("usecase input = %+v, want code from request", uc.verifyIn)
		}

		var envelope struct {
			Data struct {
				Purpose    string    `json:"purpose"`
				VerifiedAt time.Time `json:"verified_at"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("response is not JSON: %v", err)
		}
		if envelope.Data.Purpose != "signup_verification" {
			t.Fatalf("purpose = %q, want %q", envelope.Data.Purpose, "signup_verification")
		}
		if !envelope.Data.VerifiedAt.Equal(verifiedAt) {
			t.Fatalf("verified_at = %v, want %v", envelope.Data.VerifiedAt, verifiedAt)
		}
	})

	t.Run("maps rejection to unauthorized", func(t *testing.T) {
		uc := &fakeUC{verifyErr: goerror.NewBusiness("passcode is invalid or has expired", goerror.CodeUnauthorized)}
		r := newTestRouter(t, uc)

		rec := do(t, r, http.MethodPost, "/api/v1/passcodes/verify",
			`{"owner_id":"u1","code":"000000","purpose":"signup_verification"}`)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
		}

		var envelope struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("response is not JSON: %v", err)
		}
		if envelope.Message != "passcode is invalid or has expired" {
			t.Fatalf("message = %q, want uniform rejection text", envelope.Message)
		}
	})
}
