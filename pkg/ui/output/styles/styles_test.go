package styles_test

import (
	"testing"

	"github.com/arthur-debert/morph/pkg/ui/output/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleRegistry(t *testing.T) {
	expectedStyles := []string{
		"Header", "Success", "Error", "ErrorDetail", "Warning", "Info",
		"Muted", "Path", "Case", "Answer",
	}

	for _, styleName := range expectedStyles {
		t.Run(styleName, func(t *testing.T) {
			_, exists := styles.StyleRegistry[styleName]
			assert.True(t, exists, "Style %s should exist in registry", styleName)
		})
	}
}

func TestGetStyle(t *testing.T) {
	assert.True(t, styles.GetStyle("Error").GetBold())
	assert.Equal(t, lipgloss.NewStyle(), styles.GetStyle("NoSuchStyle"))
}

func TestRenderKeepsText(t *testing.T) {
	assert.Contains(t, styles.Render("Error", "Error:"), "Error:")
}

func TestLoadStylesFromData(t *testing.T) {
	data := []byte(`
colors:
  accent:
    light: "#000000"
    dark: "#FFFFFF"
styles:
  Accent:
    bold: true
    foreground: accent
`)
	require.NoError(t, styles.LoadStylesFromData(data))
	t.Cleanup(func() {
		require.NoError(t, styles.LoadStylesFromData(mustEmbedded(t)))
	})

	assert.True(t, styles.GetStyle("Accent").GetBold())
	_, exists := styles.StyleRegistry["Error"]
	assert.False(t, exists)
}

func TestLoadStylesFromDataRejectsEmpty(t *testing.T) {
	assert.Error(t, styles.LoadStylesFromData([]byte("colors: {}\n")))
	assert.Error(t, styles.LoadStylesFromData([]byte("styles: [")))
}

func mustEmbedded(t *testing.T) []byte {
	t.Helper()
	return styles.Embedded()
}

func TestMergeStyles(t *testing.T) {
	merged := styles.MergeStyles("Case", "Error")
	assert.True(t, merged.GetBold())
	assert.True(t, merged.GetUnderline())
}
