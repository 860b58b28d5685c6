// Package hash stores credentials in non-reversible form.
//
// Passcodes are written to the database as keyed hashes and probes are
// hashed before lookup, so the table never holds a usable code. The hasher
// must be deterministic for that lookup to work, hence HMAC rather than a
// salted scheme.
package hash
