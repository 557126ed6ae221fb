package partials

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vintechs/portal/internal/view"
)

func renderToasts(t *testing.T, flashes view.FlashData) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, Toasts(flashes).Render(context.Background(), &b))
	return b.String()
}

func TestToasts(t *testing.T) {
	out := renderToasts(t, view.FlashData{
		Success: []string{"Welcome back!"},
		Error:   []string{`<script>alert("x")</script>`},
	})

	assert.Contains(t, out, `id="toasts"`)
	assert.Contains(t, out, `role="status"`)
	assert.Contains(t, out, `aria-live="polite"`)
	assert.Contains(t, out, "toast-success")
	assert.Contains(t, out, "Welcome back!")
	assert.Contains(t, out, "toast-error")
	assert.Contains(t, out, `aria-label="Dismiss"`)
	assert.NotContains(t, out, "<script>", "messages are escaped")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.Less(t, strings.Index(out, "toast-success"), strings.Index(out, "toast-error"), "successes come first")
}

func TestToastsEmpty(t *testing.T) {
	out := renderToasts(t, view.FlashData{})
	assert.Contains(t, out, `id="toasts"`, "the container is always present")
	assert.NotContains(t, out, "toast-")
}
