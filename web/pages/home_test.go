package pages

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cristianadrielbraun/qrcard/web/components"
)

func TestHomePageListsTypes(t *testing.T) {
	var buf bytes.Buffer
	err := HomePage([]components.TypeOption{
		{Value: "url", Label: "URL", Fields: []string{"url"}},
		{Value: "wifi", Label: "Wi-Fi <secure>", Fields: []string{"wifi_ssid"}},
	}).Render(context.Background(), &buf)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `<option value="url">URL</option>`)
	assert.Contains(t, html, "Wi-Fi &lt;secure&gt;")
	assert.Contains(t, html, `"Fields":["wifi_ssid"]`)
	assert.Contains(t, html, `Wi-Fi \u003csecure\u003e`)
	assert.Contains(t, html, `id="card-form"`)
	assert.Contains(t, html, `<script id="types" type="application/json">`)
	assert.Contains(t, html, `<script src="/web/static/js/home.js" defer></script>`)
}
