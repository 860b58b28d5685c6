// Package codegen produces the short numeric codes sent to email addresses.
package codegen

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

const (
	// codeMin is the smallest issued code. Codes never start with zero, so
	// every value renders as exactly six digits.
	codeMin = 100000
	// codeSpan is the number of distinct codes.
	codeSpan = 900000
)

// Generator issues one-time codes.
type Generator interface {
	Generate() (string, error)
}

// Numeric draws uniformly from [100000, 999999] using a cryptographic
// random source. The draw selects directly into the range, so there is no
// modulo bias and no rejection loop.
type Numeric struct {
	rand io.Reader
}

// NewNumeric returns a generator backed by crypto/rand.
func NewNumeric() *Numeric {
	return &Numeric{rand: rand.Reader}
}

// Generate returns a six-digit code. A failing random source is an error the
// caller must treat as fatal for the operation; no weaker source is tried.
func (g *Numeric) Generate() (string, error) {
	n, err := rand.Int(g.rand, big.NewInt(codeSpan))
	if err != nil {
		return "", fmt.Errorf("codegen: read random source: %w", err)
	}

	return fmt.Sprintf("%06d", codeMin+n.Int64()), nil
}
