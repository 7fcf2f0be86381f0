// Package parsefn provides ready-made parse functions and
// validations for common field types.
package parsefn

import (
	"errors"
	"net"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cmdkit/cmdkit/schema"
)

// Int parses a decimal integer.
func Int(raw string) (interface{}, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Uint8 parses a small unsigned decimal integer.
func Uint8(raw string) (interface{}, error) {
	n, err := strconv.ParseUint(raw, 10, 8)
	if err != nil {
		return nil, err
	}
	return uint8(n), nil
}

// Float64 parses a decimal floating point number.
func Float64(raw string) (interface{}, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Duration parses a time.Duration in the usual "300ms", "2h45m"
// notation.
func Duration(raw string) (interface{}, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// ErrEmptyPath is returned by AbsPath for an empty token.
var ErrEmptyPath = errors.New("empty path not allowed")

// AbsPath resolves the token to an absolute path. Empty paths are
// not allowed.
func AbsPath(raw string) (interface{}, error) {
	if raw == "" {
		return nil, ErrEmptyPath
	}
	return filepath.Abs(raw)
}

// TCPAddr resolves the token as a TCP address, yielding a
// *net.TCPAddr.
func TCPAddr(raw string) (interface{}, error) {
	return net.ResolveTCPAddr("tcp", raw)
}

// NonEmpty rejects empty string values.
var NonEmpty = &schema.Validation{
	Check: func(v interface{}) bool {
		s, ok := v.(string)
		return ok && s != ""
	},
	Message: "must not be empty",
}

// Positive rejects int values that are not greater than zero. Pair
// it with Int.
var Positive = &schema.Validation{
	Check: func(v interface{}) bool {
		n, ok := v.(int)
		return ok && n > 0
	},
	Message: "must be positive",
}
