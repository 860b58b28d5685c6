package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/goproof/internal/mailer/entity"
	"github.com/shandysiswandi/goproof/internal/mailer/usecase"
	"github.com/shandysiswandi/goproof/internal/pkg/clock"
	"github.com/shandysiswandi/goproof/internal/pkg/config"
	"github.com/shandysiswandi/goproof/internal/pkg/goerror"
	"github.com/shandysiswandi/goproof/internal/pkg/instrument"
	"github.com/shandysiswandi/goproof/internal/pkg/jwt"
	"github.com/shandysiswandi/goproof/internal/pkg/router"
	"github.com/shandysiswandi/goproof/internal/pkg/uid"
)

type fakeOpsUC struct {
	listIn    *usecase.DeliveryListInput
	listOut   *usecase.DeliveryListOutput
	listErr   error
	detailIn  *usecase.DeliveryDetailInput
	detailOut *usecase.DeliveryDetailOutput
	detailErr error
	statsOut  *usecase.DeliveryStatsOutput
	statsErr  error
}

func (f *fakeOpsUC) ConsumePasscodeEmail(context.Context, usecase.ConsumePasscodeEmailInput) error {
	return nil
}

func (f *fakeOpsUC) DeliveryList(_ context.Context, in usecase.DeliveryListInput) (*usecase.DeliveryListOutput, error) {
	f.listIn = &in
	return f.listOut, f.listErr
}

func (f *fakeOpsUC) DeliveryDetail(_ context.Context, in usecase.DeliveryDetailInput) (*usecase.DeliveryDetailOutput, error) {
	f.detailIn = &in
	return f.detailOut, f.detailErr
}

func (f *fakeOpsUC) DeliveryStats(context.Context) (*usecase.DeliveryStatsOutput, error) {
	return f.statsOut, f.statsErr
}

func newTestRouter(t *testing.T, uc uc) (*router.Router, string) {
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

	token, err := signer.Generate(1, "ops@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	r := router.NewRouter(router.Config{
		Config:     cfg,
		UUID:       uid.NewUUID(),
		JWT:        signer,
		Instrument: instrument.NewNoop(),
	})
	RegisterHTTPEndpoint(r, uc)
	return r, token
}

func do(t *testing.T, r *router.Router, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func sampleDelivery() entity.Delivery {
	return entity.Delivery{
		ID:        1,
		EventID:   "evt-1",
		OwnerID:   "u1",
		Email:     "u1@example.com",
		Purpose:   entity.PurposeSignupVerification,
		Subject:   "Verify your email address",
		Status:    entity.DeliveryStatusSent,
		Attempts:  1,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 6, 1, 12, 0, 1, 0, time.UTC),
	}
}

func TestHTTPEndpoint_RequiresBearerToken(t *testing.T) {
	r, _ := newTestRouter(t, &fakeOpsUC{})

	paths := []string{
		"/api/v1/mailer/deliveries",
		"/api/v1/mailer/deliveries/1",
		"/api/v1/mailer/stats",
	}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			rec := do(t, r, path, "")
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d without a token", rec.Code, http.StatusUnauthorized)
			}

			rec = do(t, r, path, "not-a-jwt")
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want %d with a garbage token", rec.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestHTTPEndpoint_DeliveryList(t *testing.T) {
	t.Run("returns a page with filters applied", func(t *testing.T) {
		uc := &fakeOpsUC{listOut: &usecase.DeliveryListOutput{
			Page:       1,
			Size:       10,
			Total:      1,
			Deliveries: []entity.Delivery{sampleDelivery()},
		}}
		r, token := newTestRouter(t, uc)

		rec := do(t, r, "/api/v1/mailer/deliveries?status=2&page=1&size=10", token)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		if uc.listIn == nil || uc.listIn.Status != 2 || uc.listIn.Size != 10 || uc.listIn.Page != 1 {
			t.Fatalf("usecase input = %+v, want query filters", uc.listIn)
		}

		var envelope struct {
			Data struct {
				Total      int64 `json:"total"`
				Deliveries []struct {
					EventID string `json:"event_id"`
					Status  string `json:"status"`
				} `json:"deliveries"`
			} `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("response is not JSON: %v", err)
		}
		if envelope.Data.Total != 1 || len(envelope.Data.Deliveries) != 1 {
			t.Fatalf("data = %+v, want one delivery", envelope.Data)
		}
		if envelope.Data.Deliveries[0].EventID != "evt-1" || envelope.Data.Deliveries[0].Status != "sent" {
			t.Fatalf("delivery = %+v", envelope.Data.Deliveries[0])
		}
	})

	t.Run("rejects inverted date range", func(t *testing.T) {
		r, token := newTestRouter(t, &fakeOpsUC{})

		rec := do(t, r, "/api/v1/mailer/deliveries?date_from=2025-06-02T00:00:00Z&date_to=2025-06-01T00:00:00Z", token)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("rejects non-numeric status", func(t *testing.T) {
		r, token := newTestRouter(t, &fakeOpsUC{})

		rec := do(t, r, "/api/v1/mailer/deliveries?status=abc", token)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestHTTPEndpoint_DeliveryDetail(t *testing.T) {
	t.Run("returns the row", func(t *testing.T) {
		uc := &fakeOpsUC{detailOut: &usecase.DeliveryDetailOutput{Delivery: sampleDelivery()}}
		r, token := newTestRouter(t, uc)

		rec := do(t, r, "/api/v1/mailer/deliveries/1", token)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		if uc.detailIn == nil || uc.detailIn.ID != 1 {
			t.Fatalf("usecase input = %+v, want id 1", uc.detailIn)
		}
	})

	t.Run("maps not found", func(t *testing.T) {
		uc := &fakeOpsUC{detailErr: goerror.NewBusiness("delivery not found", goerror.CodeNotFound)}
		r, token := newTestRouter(t, uc)

		rec := do(t, r, "/api/v1/mailer/deliveries/99", token)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
		}
	})
}

func TestHTTPEndpoint_DeliveryStats(t *testing.T) {
	uc := &fakeOpsUC{statsOut: &usecase.DeliveryStatsOutput{
		Statuses: map[string]int64{"sent": 2, "failed": 1},
		Consumed: 3,
		Sent:     2,
		Failed:   1,
	}}
	r, token := newTestRouter(t, uc)

	rec := do(t, r, "/api/v1/mailer/stats", token)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var envelope struct {
		Data struct {
			Statuses map[string]int64 `json:"statuses"`
			Consumed int64            `json:"consumed"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	if envelope.Data.Statuses["sent"] != 2 || envelope.Data.Consumed != 3 {
		t.Fatalf("data = %+v", envelope.Data)
	}
}
