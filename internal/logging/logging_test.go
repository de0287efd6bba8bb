package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jrsteele09/go-league-admin/internal/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSetupWriter(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	t.Run("json outside dev", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.SetupWriter(&buf, "debug", "PROD")
		logger.Debug().Str("path", "/drivers").Msg("hello")

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		require.Equal(t, "hello", line["message"])
		require.Equal(t, "/drivers", line["path"])
		require.Equal(t, "debug", line["level"])
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.SetupWriter(&buf, "warn", "PROD")
		logger.Info().Msg("dropped")
		require.Zero(t, buf.Len())
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		logger := logging.SetupWriter(&buf, "chatty", "PROD")
		logger.Debug().Msg("dropped")
		logger.Info().Msg("kept")
		require.Contains(t, buf.String(), "kept")
		require.NotContains(t, buf.String(), "dropped")
	})
}
