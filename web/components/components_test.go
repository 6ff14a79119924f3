package components

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanabilityBadge(t *testing.T) {
	var buf bytes.Buffer
	err := ScanabilityBadge(BadgeProps{
		Label:  "Risky",
		Reason: "Try higher contrast colors or a smaller logo.",
		Risky:  true,
		Hint:   "Fun <style>",
	}).Render(context.Background(), &buf)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `data-label="Risky"`)
	assert.Contains(t, html, "Scanability: Risky")
	assert.Contains(t, html, "border-amber-500")
	assert.Contains(t, html, "Fun &lt;style&gt;")

	buf.Reset()
	require.NoError(t, ScanabilityBadge(BadgeProps{Label: "Good", Class: "px-1"}).Render(context.Background(), &buf))
	html = buf.String()
	assert.Contains(t, html, "border-green-500")
	assert.Contains(t, html, "px-1")
	assert.NotContains(t, html, "px-3")
	assert.NotContains(t, html, "opacity-80")
}
