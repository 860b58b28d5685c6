package entity

import "testing"

func TestPurposeFromString(t *testing.T) {
	tests := []struct {
		in   string
		want Purpose
	}{
		{in: "signup_verification", want: PurposeSignupVerification},
		{in: "email_change", want: PurposeEmailChange},
		{in: "password_reset", want: PurposePasswordReset},
		{in: "", want: PurposeUnknown},
		{in: "login", want: PurposeUnknown},
		{in: "SIGNUP_VERIFICATION", want: PurposeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := PurposeFromString(tt.in); got != tt.want {
				t.Fatalf("PurposeFromString(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPurpose_String_RoundTrip(t *testing.T) {
	for _, p := range []Purpose{PurposeSignupVerification, PurposeEmailChange, PurposePasswordReset} {
		if got := PurposeFromString(p.String()); got != p {
			t.Fatalf("PurposeFromString(%q) = %v, want %v", p.String(), got, p)
		}
	}

	if got := Purpose(99).String(); got != "unknown" {
		t.Fatalf("Purpose(99).String() = %q, want %q", got, "unknown")
	}
}

func TestPurpose_IsUnknown(t *testing.T) {
	if PurposeSignupVerification.IsUnknown() {
		t.Fatal("PurposeSignupVerification.IsUnknown() = true, want false")
	}
	if !PurposeUnknown.IsUnknown() {
		t.Fatal("PurposeUnknown.IsUnknown() = false, want true")
	}
	if !Purpose(42).IsUnknown() {
		t.Fatal("Purpose(42).IsUnknown() = false, want true")
	}
}
