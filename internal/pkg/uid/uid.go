// Package uid groups the identifier generators used across modules.
//
// Numeric snowflakes key database rows, UUIDs tag requests for correlation,
// and object IDs name events on the message bus.
package uid

// NumberID produces int64 identifiers.
type NumberID interface {
	Generate() int64
}

// StringID produces string identifiers.
type StringID interface {
	Generate() string
}
