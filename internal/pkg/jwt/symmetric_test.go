package jwt

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type fakeUUID struct{}

func (fakeUUID) Generate() string { return "token-id-1" }

func testConfig(clk *fakeClock) Config {
	return Config{
		Secret:    []byte(strings.Repeat("s", 64)),
		Issuer:    "goproof-test",
		Audiences: []string{"goproof-ops"},
		TTL:       15 * time.Minute,
		Clock:     clk,
		UUID:      fakeUUID{},
	}
}

func TestNewHS512_RejectsShortSecret(t *testing.T) {
	cfg := testConfig(&fakeClock{now: time.Now()})
	cfg.Secret = []byte("short")

	if _, err := NewHS512(cfg); !errors.Is(err, ErrSigningKeyTooShort) {
		t.Fatalf("NewHS512() error = %v, want ErrSigningKeyTooShort", err)
	}
}

func TestSymmetric_GenerateVerify(t *testing.T) {
	clk := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	signer, err := NewHS512(testConfig(clk))
	if err != nil {
		t.Fatalf("NewHS512() error = %v", err)
	}

	token, err := signer.Generate(42, "ops@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.ActorID != 42 || claims.ActorEmail != "ops@example.com" {
		t.Fatalf("claims = %+v, want actor 42", claims)
	}
	if claims.ID != "token-id-1" {
		t.Fatalf("token id = %q, want %q", claims.ID, "token-id-1")
	}
}

func TestSymmetric_Verify_Expired(t *testing.T) {
	clk := &fakeClock{now: time.Now().Add(-time.Hour)}
	signer, err := NewHS512(testConfig(clk))
	if err != nil {
		t.Fatalf("NewHS512() error = %v", err)
	}

	token, err := signer.Generate(42, "ops@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := signer.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("Verify() error = %v, want ErrTokenExpired", err)
	}
}

func TestSymmetric_Verify_WrongKey(t *testing.T) {
	clk := &fakeClock{now: time.Now()}
	signer, err := NewHS512(testConfig(clk))
	if err != nil {
		t.Fatalf("NewHS512() error = %v", err)
	}

	other := testConfig(clk)
	other.Secret = []byte(strings.Repeat("x", 64))
	otherSigner, err := NewHS512(other)
	if err != nil {
		t.Fatalf("NewHS512() error = %v", err)
	}

	token, err := otherSigner.Generate(42, "ops@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := signer.Verify(token); err == nil {
		t.Fatal("Verify() error = nil for a token signed with another key")
	}
}
