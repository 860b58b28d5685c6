// Package validator validates request and dependency structs by tag.
//
// Callers depend on the Validator interface; the v10 implementation carries
// English translations so field errors reach clients readable, keyed by the
// snake_case JSON field name.
package validator
