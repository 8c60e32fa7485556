package services

import (
	"context"
	"errors"
)

// Failure kinds of the external lookups. Concrete errors wrap one of these.
var (
	ErrNetwork  = errors.New("network failure")
	ErrStatus   = errors.New("unexpected http status")
	ErrDecode   = errors.New("malformed response")
	ErrNotFound = errors.New("not found")
	ErrTooLarge = errors.New("response too large")

	ErrPlayerNotFound = errors.New("player not found")
)

// ErrorKind names the failure kind of err for the diagnostic log.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrTooLarge):
		return "too_large"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrStatus):
		return "status"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrNetwork):
		return "network"
	default:
		return "unknown"
	}
}
