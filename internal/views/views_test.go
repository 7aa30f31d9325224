package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEngineLoadsEveryPage(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	pages := []string{
		"error",
		"assignments/index",
		"assignments/show",
		"assignments/empty",
		"progress/index",
		"marks/index",
		"marks/course",
		"marks/confirm_delete",
		"settings/index",
	}
	for _, page := range pages {
		var out bytes.Buffer
		err := engine.Render(&out, page, map[string]interface{}{}, Layout)
		require.NoError(t, err, page)
		require.Contains(t, out.String(), "<nav", page)
	}
}

func TestErrorPageOffersRetry(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, engine.Render(&out, "error", map[string]interface{}{
		"Title":        "Progress",
		"ErrorMessage": "GET /assignments: HTTP error! status: 503",
		"RetryURL":     "/progress?show=completed",
	}, Layout))

	require.Contains(t, out.String(), "HTTP error! status: 503")
	require.Contains(t, out.String(), `href="/progress?show=completed"`)
	require.Contains(t, out.String(), "Retry")
}

func TestInitials(t *testing.T) {
	require.Equal(t, "AJ", initials("Alex Johnson"))
	require.Equal(t, "AM", initials("ada mary lovelace"))
	require.Equal(t, "ÉM", initials("élodie martin"))
	require.Equal(t, "?", initials("  "))
}

func TestPercent(t *testing.T) {
	require.Equal(t, "66.7", percent(200.0/3))
	require.Equal(t, "0.0", percent(0))
}
