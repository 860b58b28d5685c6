// Package clock abstracts wall time behind the Clocker interface.
//
// Passcode expiry is decided by comparing stored timestamps against the
// injected clock, so tests substitute a fixed or stepping fake to pin the
// moment of "now" instead of sleeping.
package clock
