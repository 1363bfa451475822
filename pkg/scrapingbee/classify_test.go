package scrapingbee

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSniffContentKind(t *testing.T) {
	tcases := []struct {
		contentType string
		exp         ContentKind
	}{
		{"text/html", ContentHTMLText},
		{"text/html; charset=utf-8", ContentHTMLText},
		{"text/plain", ContentHTMLText},
		{"application/json", ContentHTMLText},
		{"application/ld+json", ContentHTMLText},
		{"application/xhtml+xml", ContentHTMLText},
		{"application/pdf", ContentBinaryDocument},
		{"image/png", ContentBinaryDocument},
		{"image/jpeg", ContentBinaryDocument},
		{"application/octet-stream", ContentBinaryDocument},
		{"application/zip", ContentBinaryDocument},
		{"", ContentOther},
		{"not a media type", ContentOther},
	}

	for _, tc := range tcases {
		assert.Equal(t, tc.exp, sniffContentKind(tc.contentType), "content type %q", tc.contentType)
	}
}

func TestClassifyTable(t *testing.T) {
	assert.NoError(t, classify(200, nil))
	assert.NoError(t, classify(201, nil))

	err := classify(429, []byte(`{"message":"no more credits"}`))
	require.Error(t, err)
	terr := err.(*Error)
	assert.Equal(t, KindQuota, terr.Kind)
	assert.True(t, terr.Retriable)
	assert.Equal(t, "no more credits", terr.Message)
}

func TestUpstreamMessageExcerpt(t *testing.T) {
	long := strings.Repeat("x", excerptLimit+100)
	msg := upstreamMessage([]byte(long))
	assert.Len(t, msg, excerptLimit)

	msg = upstreamMessage([]byte(`{"message":"short"}`))
	assert.Equal(t, "short", msg)
}

func TestStringifyParams(t *testing.T) {
	params := map[string]any{
		"render_js":     false,
		"wait":          3000,
		"device":        "mobile",
		"extract_rules": map[string]any{"title": "h1"},
		"instructions":  []any{"click", "wait"},
	}

	out := stringifyParams(params)
	assert.Equal(t, "false", out["render_js"])
	assert.Equal(t, "3000", out["wait"])
	assert.Equal(t, "mobile", out["device"])
	assert.Equal(t, `{"title":"h1"}`, out["extract_rules"])
	assert.Equal(t, `["click","wait"]`, out["instructions"])
}

func TestIsScreenshot(t *testing.T) {
	assert.False(t, isScreenshot(nil))
	assert.False(t, isScreenshot(map[string]any{"render_js": true}))
	assert.False(t, isScreenshot(map[string]any{"screenshot": false}))
	assert.True(t, isScreenshot(map[string]any{"screenshot": true}))
	assert.True(t, isScreenshot(map[string]any{"screenshot_full_page": "true"}))
	assert.True(t, isScreenshot(map[string]any{"screenshot_selector": "#main"}))
}
