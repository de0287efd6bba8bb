package errors_test

import (
	"fmt"
	"testing"

	"github.com/jrsteele09/go-league-admin/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	require.NoError(t, errors.Wrapf(nil, "[test] nothing"))

	err := errors.Wrapf(errors.ErrSessionNotFound, "[test] session %q", "abc")
	require.EqualError(t, err, `[test] session "abc": session not found`)
	require.True(t, errors.Is(err, errors.ErrSessionNotFound))
}

func TestReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.ErrNoSessionCookie, "no_cookie"},
		{errors.Wrapf(errors.ErrSessionExpired, "[test] session"), "expired_session"},
		{fmt.Errorf("%w: bad signature", errors.ErrCSRFTokenMismatch), "token_mismatch"},
		{errors.ErrCSRFTokenMissing, "token_missing"},
		{fmt.Errorf("boom"), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, errors.Reason(tt.err))
		})
	}
}
