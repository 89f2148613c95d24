package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderParagraph(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render("Independent cafés with **good light** and quiet corners.")
	require.NoError(t, err)
	require.Contains(t, html, "<p>")
	require.Contains(t, html, "<strong>good light</strong>")
}

func TestRenderStripsScripts(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render("Hello <script>alert(1)</script> world\n\n<img src=x onerror=alert(1)>")
	require.NoError(t, err)
	require.NotContains(t, html, "<script")
	require.NotContains(t, html, "onerror")
}

func TestRenderExternalLinks(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render("See [the map](#map) or [OSM](https://www.openstreetmap.org).")
	require.NoError(t, err)
	require.Contains(t, html, `href="#map"`)
	require.True(t, strings.Contains(html, `target="_blank"`), "external link should open in a new tab: %s", html)
	require.Contains(t, html, "nofollow")
}

func TestRenderTypographer(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render("essays, design -- and AI non-fiction")
	require.NoError(t, err)
	require.True(t, strings.Contains(html, "–") || strings.Contains(html, "&ndash;"), "dashes not converted: %s", html)
}
