package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme_StatusColoursDiffer(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	seen := map[lipgloss.Color]bool{}
	for _, c := range []lipgloss.Color{theme.Accent, theme.Highlight, theme.Success, theme.Warning, theme.Error} {
		assert.False(t, seen[c], "duplicate colour %s", c)
		seen[c] = true
	}
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s.Theme())
	assert.Equal(t, DefaultTheme(), s.Theme())
}

func TestDefaultStyles_DialogHasBorder(t *testing.T) {
	s := DefaultStyles()

	assert.True(t, s.Dialog.GetBorderTop())
	assert.True(t, s.Editor.GetBorderLeft())
	assert.True(t, s.DialogTitle.GetBold())
	assert.NotEqual(t, lipgloss.Style{}, s.StatusBar)
}
