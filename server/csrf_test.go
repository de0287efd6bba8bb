package server

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-league-admin/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestCSRFIssuer(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := newCSRFIssuer([]byte("secret"), time.Hour, func() time.Time { return now })

	token, err := issuer.Issue("session-a")
	require.NoError(t, err)

	require.NoError(t, issuer.Verify(token, "session-a"))
	require.ErrorIs(t, issuer.Verify(token, "session-b"), errors.ErrCSRFTokenMismatch)
	require.ErrorIs(t, issuer.Verify("", "session-a"), errors.ErrCSRFTokenMissing)
	require.ErrorIs(t, issuer.Verify("garbage", "session-a"), errors.ErrCSRFTokenMismatch)

	other := newCSRFIssuer([]byte("another secret"), time.Hour, func() time.Time { return now })
	require.ErrorIs(t, other.Verify(token, "session-a"), errors.ErrCSRFTokenMismatch)

	later := newCSRFIssuer([]byte("secret"), time.Hour, func() time.Time { return now.Add(2 * time.Hour) })
	require.ErrorIs(t, later.Verify(token, "session-a"), errors.ErrCSRFTokenMismatch)
}
