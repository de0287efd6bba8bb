package errors

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrNoSessionCookie = errors.New("no session cookie")

	ErrCSRFTokenMissing  = errors.New("csrf token missing")
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")

	ErrInvalidID = errors.New("invalid id")
)

// reasons maps each sentinel to the short label written into request logs.
var reasons = []struct {
	err    error
	reason string
}{
	{ErrNoSessionCookie, "no_cookie"},
	{ErrSessionNotFound, "unknown_session"},
	{ErrSessionExpired, "expired_session"},
	{ErrCSRFTokenMissing, "token_missing"},
	{ErrCSRFTokenMismatch, "token_mismatch"},
	{ErrInvalidID, "invalid_id"},
}

// Wrapf adds context in front of err and keeps it matchable with Is. A nil err stays nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Reason labels err for logging, "unknown" when it wraps none of the package's sentinels.
func Reason(err error) string {
	for _, r := range reasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return "unknown"
}
