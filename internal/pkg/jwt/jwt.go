package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidSigningMethod reports a token signed with an unexpected
	// algorithm.
	ErrInvalidSigningMethod = errors.New("invalid JWT signing method")

	// ErrSigningKeyTooShort reports an HS512 key under 64 bytes.
	ErrSigningKeyTooShort = errors.New("HS512 signing key must be at least 64 bytes (512 bits)")

	// ErrTokenExpired reports an expired token.
	ErrTokenExpired = errors.New("JWT token has expired")

	// ErrInvalidToken reports a token that parsed but failed validation.
	ErrInvalidToken = errors.New("invalid token")
)

// JWT mints and verifies the bearer tokens protecting operator endpoints.
type JWT interface {
	// Generate signs a token for the operator.
	Generate(actorID int64, email string) (string, error)
	// Verify parses and validates tokenStr and returns its claims.
	Verify(tokenStr string) (Claims, error)
}

type clocker interface {
	Now() time.Time
}

type generator interface {
	Generate() string
}

type jwtContextKey struct{}

// Config collects the inputs for building a JWT implementation.
type Config struct {
	// Secret is the HMAC signing key.
	Secret []byte
	// Issuer is stamped into and required from every token.
	Issuer string
	// Audiences are the accepted audience values.
	Audiences []string
	// TTL bounds token lifetime.
	TTL time.Duration
	// Clock is the time source for issued-at and expiry.
	Clock clocker
	// UUID generates token IDs.
	UUID generator
}

// Claims extends the registered claims with the authenticated operator.
type Claims struct {
	jwt.RegisteredClaims
	// ActorID identifies the operator the token was minted for.
	ActorID int64 `json:"actor_id,string"`
	// ActorEmail is the operator's email address.
	ActorEmail string `json:"actor_email"`
}

// GetAuth returns the claims stored in ctx, nil when the request was not
// authenticated.
func GetAuth(ctx context.Context) *Claims {
	clm, ok := ctx.Value(jwtContextKey{}).(Claims)
	if !ok {
		return nil
	}
	return &clm
}

// SetAuth stores verified claims in ctx.
func SetAuth(ctx context.Context, clm Claims) context.Context {
	return context.WithValue(ctx, jwtContextKey{}, clm)
}
