// Package jwt handles the bearer tokens for the operator API.
//
// It carries a typed Claims wrapper over the registered claims, an HS512
// symmetric implementation, and context helpers the router middleware uses
// to hand verified claims to endpoints. Operator tokens are minted
// out-of-band with the shared secret; the service itself only verifies.
package jwt
