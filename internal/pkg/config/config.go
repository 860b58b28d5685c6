// Package config exposes runtime configuration behind a typed getter
// interface so modules never touch the underlying provider directly.
package config

import (
	"io"
	"time"
)

// Config reads typed values by dotted key, e.g. "modules.passcode.enabled".
// Getters never fail; a missing or malformed value yields the zero value so
// callers pair them with sane defaults where zero is not acceptable.
type Config interface {
	io.Closer

	// GetBool returns the value for key as a bool.
	GetBool(key string) bool

	// GetString returns the value for key as a string.
	GetString(key string) string

	// GetInt returns the value for key as an int.
	GetInt(key string) int

	// GetInt32 returns the value for key as an int32.
	GetInt32(key string) int32

	// GetInt64 returns the value for key as an int64.
	GetInt64(key string) int64

	// GetUint16 returns the value for key as a uint16, for ports.
	GetUint16(key string) uint16

	// GetFloat64 returns the value for key as a float64.
	GetFloat64(key string) float64

	// GetSecond returns the integer value for key as a duration in seconds.
	GetSecond(key string) time.Duration

	// GetMinute returns the integer value for key as a duration in minutes.
	GetMinute(key string) time.Duration

	// GetHour returns the integer value for key as a duration in hours.
	GetHour(key string) time.Duration

	// GetBinary returns the value for key decoded from base64, nil when the
	// value is absent or not valid base64. Secrets are stored encoded.
	GetBinary(key string) []byte

	// GetArray returns the value for key split on commas, nil when empty.
	GetArray(key string) []string

	// GetMap returns the value for key parsed from "k1:v1,k2:v2" pairs.
	GetMap(key string) map[string]string
}
