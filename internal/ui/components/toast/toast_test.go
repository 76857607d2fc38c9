package toast

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, p Props) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, Toast(p).Render(context.Background(), &sb))
	return sb.String()
}

func TestToastError(t *testing.T) {
	out := render(t, Props{
		Description: "Try <again>",
		Variant:     VariantError,
		Position:    PositionTopCenter,
		Duration:    5000,
		Dismissible: true,
	})

	assert.Contains(t, out, `role="alert"`)
	assert.Contains(t, out, `data-toast="error"`)
	assert.Contains(t, out, `data-position="top-center"`)
	assert.Contains(t, out, `data-duration="5000"`)
	assert.Contains(t, out, "bg-red-50")
	assert.Contains(t, out, "Try &lt;again&gt;")
	assert.Contains(t, out, "data-toast-dismiss")
}

func TestToastSuccessDefaults(t *testing.T) {
	out := render(t, Props{Description: "Sent", Variant: VariantSuccess})

	assert.Contains(t, out, `role="status"`)
	assert.Contains(t, out, "bg-green-50")
	assert.NotContains(t, out, "data-position")
	assert.NotContains(t, out, "data-duration")
	assert.NotContains(t, out, "data-toast-dismiss")
}
