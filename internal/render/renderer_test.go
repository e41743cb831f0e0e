package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderWritesPageWithVerbatimBody(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "index.html")
	r, err := New(outputPath)
	require.NoError(t, err)

	body := "Solana is currently trading at $150. The daily support level is $145 and the daily resistance level is $160."
	require.NoError(t, r.Render(body))

	page, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	require.Contains(t, string(page), body)
	require.True(t, strings.HasPrefix(string(page), "<!DOCTYPE html>"))
}

func TestRenderDoesNotEscapeMarkup(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "index.html")
	r, err := New(outputPath)
	require.NoError(t, err)

	// The completion text is embedded as-is; this pins the current
	// (unescaped) behavior.
	body := `support is <b>$145</b> & resistance "near" $160`
	require.NoError(t, r.Render(body))

	page, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	require.Contains(t, string(page), body)
}

func TestRenderOverwritesPreviousPage(t *testing.T) {
	dir := t.TempDir()
	outputPath := filepath.Join(dir, "index.html")
	r, err := New(outputPath)
	require.NoError(t, err)

	require.NoError(t, r.Render("first"))
	require.NoError(t, r.Render("second"))

	page, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	require.Contains(t, string(page), "second")
	require.NotContains(t, string(page), "first")

	// No temp files left behind by the atomic replace.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestNewRequiresOutputPath(t *testing.T) {
	_, err := New("")
	require.Error(t, err)
}
