package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderKeepsContent(t *testing.T) {
	r, err := NewRenderer(80)
	require.NoError(t, err)
	require.Contains(t, r.Render("plain **bold** text"), "bold")
}

func TestSetWidthKeepsRendererUsable(t *testing.T) {
	r, err := NewRenderer(80)
	require.NoError(t, err)

	require.NoError(t, r.SetWidth(40))
	require.Contains(t, r.Render("hello after resize"), "hello after resize")

	// Same width is a no-op.
	require.NoError(t, r.SetWidth(40))
}
