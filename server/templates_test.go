package server

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAdminPage(t *testing.T) {
	page, err := parseAdminPage()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, page.Execute(&buf, adminPageData{AppName: "League", CSRFToken: "tok<en>", UserName: "Ana Costa"}))
	require.Contains(t, buf.String(), `<meta name="csrf-token" content="tok&lt;en&gt;">`)
	require.Contains(t, buf.String(), `data-initials="AC"`)
}

func TestInitials(t *testing.T) {
	require.Equal(t, "", initials(""))
	require.Equal(t, "SA", initials("Super Admin"))
	require.Equal(t, "LM", initials("  Lewis   Marsh "))
	require.Equal(t, "É", initials("Émile"))
}

func TestColouredLabelsKeepText(t *testing.T) {
	require.Contains(t, colouredMethod("GET"), "GET")
	require.Contains(t, colouredMethod("TRACE"), "TRACE")
	require.Contains(t, colouredStatus(419), "419")
	require.Contains(t, colouredStatus(503), "503")
}
